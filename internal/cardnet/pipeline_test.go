package cardnet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database/models"
	"github.com/hugh/cardlink/internal/store"
	"github.com/hugh/cardlink/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *cardnet.Service {
	t.Helper()
	return testutil.NewTestService(t, store.NewMemoryStore(), cardnet.Config{})
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *cardnet.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.ErrorIs(t, err, cardnet.ErrValidation)
	return verr.Fields
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	t.Run("new orders are pending with distinct ids", func(t *testing.T) {
		a, err := svc.PlaceOrder(ctx, cardnet.PlaceOrderInput{CompanyName: "Acme", BrandColors: "#fff"})
		require.NoError(t, err)
		b, err := svc.PlaceOrder(ctx, cardnet.PlaceOrderInput{CompanyName: "Acme", BrandColors: "#fff"})
		require.NoError(t, err)

		assert.Equal(t, models.OrderStatusPending, a.Status)
		assert.Equal(t, models.OrderStatusPending, b.Status)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, testutil.FixedTime, a.CreatedAt)
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		o, err := svc.PlaceOrder(ctx, cardnet.PlaceOrderInput{CompanyName: "  Initech\t", BrandColors: " #000 ", Logo: " logo.png "})
		require.NoError(t, err)
		assert.Equal(t, "Initech", o.CompanyName)
		assert.Equal(t, "#000", o.BrandColors)
		assert.Equal(t, "logo.png", o.Logo)
	})

	t.Run("logo is optional", func(t *testing.T) {
		o, err := svc.PlaceOrder(ctx, cardnet.PlaceOrderInput{CompanyName: "Hooli", BrandColors: "#123"})
		require.NoError(t, err)
		assert.Empty(t, o.Logo)
	})

	tests := []struct {
		name  string
		input cardnet.PlaceOrderInput
		want  []string
	}{
		{"missing company", cardnet.PlaceOrderInput{BrandColors: "#fff"}, []string{"company_name"}},
		{"blank colors", cardnet.PlaceOrderInput{CompanyName: "Acme", BrandColors: "   "}, []string{"brand_colors"}},
		{"everything missing", cardnet.PlaceOrderInput{}, []string{"company_name", "brand_colors"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(svc.ListOrders(ctx, ""))

			_, err := svc.PlaceOrder(ctx, tt.input)
			fields := validationFields(t, err)
			assert.Len(t, fields, len(tt.want))
			for _, f := range tt.want {
				assert.Equal(t, "is required", fields[f])
			}

			assert.Len(t, svc.ListOrders(ctx, ""), before)
		})
	}
}

func TestSubmitDesign(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	order := testutil.CreateTestOrder(t, svc, "Acme")

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.SubmitDesign(ctx, 987654, "classic")
		assert.ErrorIs(t, err, cardnet.ErrNotFound)

		var nf *cardnet.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "order", nf.Entity)
	})

	t.Run("blank template", func(t *testing.T) {
		_, err := svc.SubmitDesign(ctx, order.ID, "  ")
		fields := validationFields(t, err)
		assert.Contains(t, fields, "template")
		assert.Len(t, svc.ListOrders(ctx, models.OrderStatusPending), 1)
	})

	t.Run("designs a pending order", func(t *testing.T) {
		design, err := svc.SubmitDesign(ctx, order.ID, " modern ")
		require.NoError(t, err)
		assert.Equal(t, order.ID, design.OrderID)
		assert.Equal(t, "modern", design.Template)
		assert.NotEqual(t, order.ID, design.ID)

		designed := svc.ListOrders(ctx, models.OrderStatusDesigned)
		require.Len(t, designed, 1)
		assert.Equal(t, order.ID, designed[0].ID)
	})

	t.Run("second design is rejected without changes", func(t *testing.T) {
		_, err := svc.SubmitDesign(ctx, order.ID, "bold")
		assert.ErrorIs(t, err, cardnet.ErrInvalidState)

		designs := svc.ListDesigns(ctx)
		require.Len(t, designs, 1)
		assert.Equal(t, "modern", designs[0].Template)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	assert.Empty(t, svc.ListOrders(ctx, ""))
	assert.NotNil(t, svc.ListOrders(ctx, ""))

	first := testutil.CreateTestOrder(t, svc, "Acme")
	testutil.CreateTestDesign(t, svc, "Globex")
	third := testutil.CreateTestOrder(t, svc, "Hooli")

	all := svc.ListOrders(ctx, "")
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)

	pending := svc.ListOrders(ctx, models.OrderStatusPending)
	require.Len(t, pending, 2)
	assert.Equal(t, third.ID, pending[1].ID)

	// results are copies
	all[0].CompanyName = "Mutated"
	assert.Equal(t, "Acme", svc.ListOrders(ctx, "")[0].CompanyName)
}
