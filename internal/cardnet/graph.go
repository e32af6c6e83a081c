package cardnet

import (
	"context"
	"strings"

	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
)

// Search matches query case-insensitively against name, company and title
// of public cards. A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string) []models.Card {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Card{}
	if q == "" {
		return out
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.state.cards {
		if !c.IsPublic {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.CompanyName), q) ||
			strings.Contains(strings.ToLower(c.Title), q) {
			out = append(out, c)
		}
	}
	return out
}

// SendRequest proposes a connection from one card to another. The sender's
// name and company are copied onto the request.
func (s *Service) SendRequest(ctx context.Context, fromCardID, toCardID int64) (*models.ConnectionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromIdx := s.state.cardIndex(fromCardID)
	if fromIdx < 0 {
		return nil, notFound("card", fromCardID)
	}
	if s.state.cardIndex(toCardID) < 0 {
		return nil, notFound("card", toCardID)
	}
	if fromCardID == toCardID {
		return nil, invalidState("a card cannot connect to itself")
	}
	if s.state.connected(fromCardID, toCardID) {
		return nil, invalidState("cards %d and %d are already connected", fromCardID, toCardID)
	}
	for _, r := range s.state.requests {
		if r.FromCardID == fromCardID && r.ToCardID == toCardID {
			return nil, invalidState("a request from %d to %d is already pending", fromCardID, toCardID)
		}
	}

	from := s.state.cards[fromIdx]
	req := models.ConnectionRequest{
		Base: models.Base{
			ID:        s.ids.NextID(),
			CreatedAt: s.timestamp(),
		},
		FromCardID:  fromCardID,
		ToCardID:    toCardID,
		FromName:    from.Name,
		FromCompany: from.CompanyName,
		Status:      models.RequestStatusPending,
	}

	requests := appendClone(s.state.requests, req)
	if err := s.persist(ctx, write{store.ConnectionRequests, requests, s.state.requests}); err != nil {
		return nil, err
	}
	s.state.requests = requests

	s.logger.Info("connection requested", "request_id", req.ID, "from", fromCardID, "to", toCardID)
	return &req, nil
}

// pendingFor finds a request addressed to viewerCardID. Requests addressed
// to someone else are reported as missing.
func (st *state) pendingFor(viewerCardID, requestID int64) (int, error) {
	idx := st.requestIndex(requestID)
	if idx < 0 || st.requests[idx].ToCardID != viewerCardID {
		return -1, notFound("connection request", requestID)
	}
	return idx, nil
}

// AcceptRequest turns a pending request addressed to the viewer into a
// connection and removes the request.
func (s *Service) AcceptRequest(ctx context.Context, viewerCardID, requestID int64) (*models.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.state.pendingFor(viewerCardID, requestID)
	if err != nil {
		return nil, err
	}
	req := s.state.requests[idx]
	if s.state.connected(req.FromCardID, req.ToCardID) {
		return nil, invalidState("cards %d and %d are already connected", req.FromCardID, req.ToCardID)
	}

	conn := models.Connection{
		ID:          s.ids.NextID(),
		CardID1:     req.FromCardID,
		CardID2:     req.ToCardID,
		ConnectedAt: s.timestamp(),
	}

	connections := appendClone(s.state.connections, conn)
	requests := deleteClone(s.state.requests, idx)
	if err := s.persist(ctx,
		write{store.Connections, connections, s.state.connections},
		write{store.ConnectionRequests, requests, s.state.requests},
	); err != nil {
		return nil, err
	}
	s.state.connections = connections
	s.state.requests = requests

	s.logger.Info("connection request accepted", "request_id", requestID, "connection_id", conn.ID)
	return &conn, nil
}

// RejectRequest removes a pending request addressed to the viewer.
func (s *Service) RejectRequest(ctx context.Context, viewerCardID, requestID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.state.pendingFor(viewerCardID, requestID)
	if err != nil {
		return err
	}

	requests := deleteClone(s.state.requests, idx)
	if err := s.persist(ctx, write{store.ConnectionRequests, requests, s.state.requests}); err != nil {
		return err
	}
	s.state.requests = requests

	s.logger.Info("connection request rejected", "request_id", requestID)
	return nil
}

// IncomingRequests lists pending requests addressed to cardID.
func (s *Service) IncomingRequests(ctx context.Context, cardID int64) []models.ConnectionRequest {
	return s.filterRequests(func(r models.ConnectionRequest) bool { return r.ToCardID == cardID })
}

// OutgoingRequests lists pending requests sent by cardID.
func (s *Service) OutgoingRequests(ctx context.Context, cardID int64) []models.ConnectionRequest {
	return s.filterRequests(func(r models.ConnectionRequest) bool { return r.FromCardID == cardID })
}

func (s *Service) filterRequests(keep func(models.ConnectionRequest) bool) []models.ConnectionRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ConnectionRequest{}
	for _, r := range s.state.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ConnectionsOf returns the card on the other end of every connection
// touching cardID.
func (s *Service) ConnectionsOf(ctx context.Context, cardID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.connectionsOf(cardID)
}

func (st *state) connectionsOf(cardID int64) []int64 {
	out := []int64{}
	for _, c := range st.connections {
		if c.Involves(cardID) {
			out = append(out, c.Other(cardID))
		}
	}
	return out
}

// ConnectedCards resolves ConnectionsOf to the cards themselves.
func (s *Service) ConnectedCards(ctx context.Context, cardID int64) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.state.connectionsOf(cardID)
	out := make([]models.Card, 0, len(ids))
	for _, id := range ids {
		if idx := s.state.cardIndex(id); idx >= 0 {
			out = append(out, s.state.cards[idx])
		}
	}
	return out
}

// ToggleVisibility flips whether the card appears in search results.
func (s *Service) ToggleVisibility(ctx context.Context, cardID int64) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.cardIndex(cardID)
	if idx < 0 {
		return nil, notFound("card", cardID)
	}

	card := s.state.cards[idx]
	card.IsPublic = !card.IsPublic
	card.UpdatedAt = s.timestamp()

	cards := replaceClone(s.state.cards, idx, card)
	if err := s.persist(ctx, write{store.Cards, cards, s.state.cards}); err != nil {
		return nil, err
	}
	s.state.cards = cards

	s.logger.Info("card visibility changed", "card_id", cardID, "public", card.IsPublic)
	return &card, nil
}
