package cardnet

import (
	"context"

	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/pkg/sharecode"
)

// Lookup resolves a share code to a card. Holding the code is enough to
// read the card; visibility is not consulted.
func (s *Service) Lookup(ctx context.Context, code string) (*models.Card, error) {
	code = sharecode.Normalize(code)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if code != "" {
		for _, c := range s.state.cards {
			if c.ShareCode == code {
				card := c
				return &card, nil
			}
		}
	}
	return nil, &NotFoundError{Entity: "share code", ID: code}
}
