package cardnet

import (
	"context"
	"strings"

	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
)

type jobInput struct {
	CompanyName string `json:"company_name" validate:"notblank"`
	Title       string `json:"title" validate:"notblank"`
}

// JobUpdate is the outcome of UpdateJob.
type JobUpdate struct {
	Card          models.Card `json:"card"`
	NotifiedCount int         `json:"notified_count"`
}

// UpdateJob moves a card to a new employer and title and issues it a new
// share code; the previous code stops resolving. The card's connections at
// the time of the update are handed to the Notifier once the change is
// stored.
func (s *Service) UpdateJob(ctx context.Context, cardID int64, companyName, title string) (*JobUpdate, error) {
	card, recipients, err := s.updateJob(ctx, cardID, companyName, title)
	if err != nil {
		return nil, err
	}

	if len(recipients) > 0 {
		if err := s.notifier.JobUpdated(ctx, card, recipients); err != nil {
			s.logger.Warn("failed to hand off job update notification",
				"card_id", cardID,
				"recipients", len(recipients),
				"error", err,
			)
		}
	}

	return &JobUpdate{Card: card, NotifiedCount: len(recipients)}, nil
}

func (s *Service) updateJob(ctx context.Context, cardID int64, companyName, title string) (models.Card, []int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.cardIndex(cardID)
	if idx < 0 {
		return models.Card{}, nil, notFound("card", cardID)
	}
	if err := validateInput(jobInput{CompanyName: companyName, Title: title}); err != nil {
		return models.Card{}, nil, err
	}

	// The card's current code is in s.state.cards, so the new one differs.
	code, err := s.uniqueShareCode(s.state.cards)
	if err != nil {
		return models.Card{}, nil, err
	}

	card := s.state.cards[idx]
	card.CompanyName = strings.TrimSpace(companyName)
	card.Title = strings.TrimSpace(title)
	card.ShareCode = code
	card.UpdatedAt = s.timestamp()

	cards := replaceClone(s.state.cards, idx, card)
	if err := s.persist(ctx, write{store.Cards, cards, s.state.cards}); err != nil {
		return models.Card{}, nil, err
	}
	s.state.cards = cards

	recipients := s.state.connectionsOf(cardID)
	s.logger.Info("job updated",
		"card_id", cardID,
		"company", card.CompanyName,
		"connections", len(recipients),
	)
	return card, recipients, nil
}
