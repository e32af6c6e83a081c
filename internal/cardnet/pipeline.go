package cardnet

import (
	"context"
	"strings"

	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
)

type PlaceOrderInput struct {
	CompanyName string `json:"company_name" validate:"notblank"`
	BrandColors string `json:"brand_colors" validate:"notblank"`
	Logo        string `json:"logo"`
}

type designInput struct {
	Template string `json:"template" validate:"notblank"`
}

// PlaceOrder records a company's request for a design. New orders are pending.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := models.Order{
		Base: models.Base{
			ID:        s.ids.NextID(),
			CreatedAt: s.timestamp(),
		},
		CompanyName: strings.TrimSpace(in.CompanyName),
		BrandColors: strings.TrimSpace(in.BrandColors),
		Logo:        strings.TrimSpace(in.Logo),
		Status:      models.OrderStatusPending,
	}

	orders := appendClone(s.state.orders, order)
	if err := s.persist(ctx, write{store.Orders, orders, s.state.orders}); err != nil {
		return nil, err
	}
	s.state.orders = orders

	s.logger.Info("order placed", "order_id", order.ID, "company", order.CompanyName)
	return &order, nil
}

// SubmitDesign attaches a design to a pending order and marks the order
// designed. The transition is one way.
func (s *Service) SubmitDesign(ctx context.Context, orderID int64, template string) (*models.Design, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.orderIndex(orderID)
	if idx < 0 {
		return nil, notFound("order", orderID)
	}
	if err := validateInput(designInput{Template: template}); err != nil {
		return nil, err
	}

	order := s.state.orders[idx]
	if order.Status != models.OrderStatusPending {
		return nil, invalidState("order %d is already %s", orderID, order.Status)
	}

	design := models.Design{
		Base: models.Base{
			ID:        s.ids.NextID(),
			CreatedAt: s.timestamp(),
		},
		OrderID:  orderID,
		Template: strings.TrimSpace(template),
	}
	order.Status = models.OrderStatusDesigned

	designs := appendClone(s.state.designs, design)
	orders := replaceClone(s.state.orders, idx, order)
	if err := s.persist(ctx,
		write{store.Designs, designs, s.state.designs},
		write{store.Orders, orders, s.state.orders},
	); err != nil {
		return nil, err
	}
	s.state.designs = designs
	s.state.orders = orders

	s.logger.Info("design submitted", "design_id", design.ID, "order_id", orderID)
	return &design, nil
}

// ListOrders returns orders in creation order, optionally filtered by status.
func (s *Service) ListOrders(ctx context.Context, status models.OrderStatus) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.state.orders))
	for _, o := range s.state.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// ListDesigns returns every design in creation order.
func (s *Service) ListDesigns(ctx context.Context) []models.Design {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Design, len(s.state.designs))
	copy(out, s.state.designs)
	return out
}
