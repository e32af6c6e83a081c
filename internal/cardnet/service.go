// Package cardnet implements the card workflow (order, design, card), the
// share-code exchange and the connection graph between cards.
//
// A Service is a single logical actor: operations are serialized and each
// runs to completion. Mutations are written through to the Store, whole
// collection at a time, before the in-memory state changes; a failed
// operation leaves the state untouched.
package cardnet

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
	"github.com/hugh/cardlink/pkg/idgen"
	"github.com/hugh/cardlink/pkg/sharecode"
)

const defaultMaxCodeAttempts = 16

// CodeGenerator returns a candidate share code.
type CodeGenerator func() (string, error)

type Config struct {
	Store    store.Store
	IDs      idgen.Generator
	Codes    CodeGenerator // defaults to sharecode.Generate
	Notifier Notifier      // defaults to NopNotifier
	Logger   *slog.Logger
	Now      func() time.Time

	// MaxCodeAttempts bounds share-code regeneration on collision.
	MaxCodeAttempts int
}

type Service struct {
	mu sync.RWMutex

	store           store.Store
	ids             idgen.Generator
	codes           CodeGenerator
	notifier        Notifier
	logger          *slog.Logger
	now             func() time.Time
	maxCodeAttempts int

	state state
}

type state struct {
	orders      []models.Order
	designs     []models.Design
	cards       []models.Card
	requests    []models.ConnectionRequest
	connections []models.Connection
}

// NewService builds a Service and loads every collection from the store.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("cardnet: store is required")
	}
	if cfg.IDs == nil {
		return nil, fmt.Errorf("cardnet: id generator is required")
	}

	s := &Service{
		store:           cfg.Store,
		ids:             cfg.IDs,
		codes:           cfg.Codes,
		notifier:        cfg.Notifier,
		logger:          cfg.Logger,
		now:             cfg.Now,
		maxCodeAttempts: cfg.MaxCodeAttempts,
	}
	if s.codes == nil {
		s.codes = sharecode.Generate
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.maxCodeAttempts <= 0 {
		s.maxCodeAttempts = defaultMaxCodeAttempts
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load(ctx context.Context) error {
	var st state
	targets := []struct {
		collection store.Collection
		dest       any
	}{
		{store.Orders, &st.orders},
		{store.Designs, &st.designs},
		{store.Cards, &st.cards},
		{store.ConnectionRequests, &st.requests},
		{store.Connections, &st.connections},
	}
	for _, t := range targets {
		if err := s.store.LoadAll(ctx, t.collection, t.dest); err != nil {
			return fmt.Errorf("loading %s: %w", t.collection, err)
		}
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	s.logger.Info("loaded card network",
		"orders", len(st.orders),
		"designs", len(st.designs),
		"cards", len(st.cards),
		"requests", len(st.requests),
		"connections", len(st.connections),
	)
	return nil
}

// write is one collection replacement within an operation.
type write struct {
	collection store.Collection
	next       any
	prev       any
}

// persist saves writes in order. When a later write fails, the collections
// already written are put back to their previous contents.
//
// A context cancelled before the first write aborts the operation. Once
// writing has started it runs to completion, so storage never keeps half of
// an operation because the caller went away.
func (s *Service) persist(ctx context.Context, writes ...write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	for i, w := range writes {
		if err := s.store.SaveAll(ctx, w.collection, w.next); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := s.store.SaveAll(ctx, writes[j].collection, writes[j].prev); rerr != nil {
					s.logger.Error("failed to restore collection after aborted write",
						"collection", writes[j].collection,
						"error", rerr,
					)
				}
			}
			return err
		}
	}
	return nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

// uniqueShareCode draws codes until one is unused by cards.
func (s *Service) uniqueShareCode(cards []models.Card) (string, error) {
	for attempt := 1; attempt <= s.maxCodeAttempts; attempt++ {
		code, err := s.codes()
		if err != nil {
			return "", fmt.Errorf("generating share code: %w", err)
		}
		code = sharecode.Normalize(code)
		if code != "" && !slices.ContainsFunc(cards, func(c models.Card) bool { return c.ShareCode == code }) {
			return code, nil
		}
		s.logger.Warn("share code collision, regenerating", "attempt", attempt)
	}
	return "", ErrShareCodeExhausted
}

func (st *state) orderIndex(id int64) int {
	return slices.IndexFunc(st.orders, func(o models.Order) bool { return o.ID == id })
}

func (st *state) designIndex(id int64) int {
	return slices.IndexFunc(st.designs, func(d models.Design) bool { return d.ID == id })
}

func (st *state) cardIndex(id int64) int {
	return slices.IndexFunc(st.cards, func(c models.Card) bool { return c.ID == id })
}

func (st *state) requestIndex(id int64) int {
	return slices.IndexFunc(st.requests, func(r models.ConnectionRequest) bool { return r.ID == id })
}

func (st *state) connected(a, b int64) bool {
	return slices.ContainsFunc(st.connections, func(c models.Connection) bool { return c.Links(a, b) })
}

// appendClone returns a new slice holding items followed by v.
func appendClone[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

// replaceClone returns a copy of items with index i set to v.
func replaceClone[T any](items []T, i int, v T) []T {
	out := slices.Clone(items)
	out[i] = v
	return out
}

// deleteClone returns a copy of items without index i.
func deleteClone[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// Stats counts the records currently held.
type Stats struct {
	Orders          int `json:"orders"`
	Designs         int `json:"designs"`
	Cards           int `json:"cards"`
	PendingRequests int `json:"pending_requests"`
	Connections     int `json:"connections"`
}

func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Orders:          len(s.state.orders),
		Designs:         len(s.state.designs),
		Cards:           len(s.state.cards),
		PendingRequests: len(s.state.requests),
		Connections:     len(s.state.connections),
	}
}
