package cardnet

import (
	"context"
	"strings"

	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
)

type AssignCardInput struct {
	Name  string `json:"name" validate:"notblank"`
	Title string `json:"title" validate:"notblank"`
	Email string `json:"email" validate:"notblank"`
	Phone string `json:"phone"`
}

// AssignCard issues a card for an employee against a design. The card takes
// a snapshot of the company name, brand colors and template, gets a fresh
// share code and starts private. A design may back any number of cards.
func (s *Service) AssignCard(ctx context.Context, designID int64, in AssignCardInput) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dIdx := s.state.designIndex(designID)
	if dIdx < 0 {
		return nil, notFound("design", designID)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	design := s.state.designs[dIdx]
	oIdx := s.state.orderIndex(design.OrderID)
	if oIdx < 0 {
		return nil, notFound("order", design.OrderID)
	}
	order := s.state.orders[oIdx]

	code, err := s.uniqueShareCode(s.state.cards)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	card := models.Card{
		Base: models.Base{
			ID:        s.ids.NextID(),
			CreatedAt: now,
		},
		Name:        strings.TrimSpace(in.Name),
		Title:       strings.TrimSpace(in.Title),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		DesignID:    design.ID,
		CompanyName: order.CompanyName,
		BrandColors: order.BrandColors,
		Template:    design.Template,
		ShareCode:   code,
		IsPublic:    false,
		UpdatedAt:   now,
	}

	cards := appendClone(s.state.cards, card)
	if err := s.persist(ctx, write{store.Cards, cards, s.state.cards}); err != nil {
		return nil, err
	}
	s.state.cards = cards

	s.logger.Info("card assigned", "card_id", card.ID, "design_id", designID)
	return &card, nil
}

// GetCard returns a copy of the card with the given id.
func (s *Service) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.state.cardIndex(id)
	if idx < 0 {
		return nil, notFound("card", id)
	}
	card := s.state.cards[idx]
	return &card, nil
}

// ListCards returns every issued card in creation order.
func (s *Service) ListCards(ctx context.Context) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Card, len(s.state.cards))
	copy(out, s.state.cards)
	return out
}
