package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/cardlink/internal/api/dto"
	"github.com/hugh/cardlink/internal/auth"
	"github.com/hugh/cardlink/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_Create(t *testing.T) {
	router, tc := setupTestRouter(t, nil)
	token := tc.Token(t, auth.RoleCompany, 0)

	t.Run("places a pending order", func(t *testing.T) {
		body := map[string]string{
			"company_name": "  Initech ",
			"brand_colors": "#112233",
			"logo":         "https://cdn.example.com/initech.png",
		}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/orders", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)

		var resp dto.OrderResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Initech", resp.CompanyName)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("missing fields are reported by name", func(t *testing.T) {
		body := map[string]string{"company_name": "   "}
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/orders", body, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Contains(t, resp.Details, "company_name")
		assert.Contains(t, resp.Details, "brand_colors")
		assert.NotContains(t, resp.Details, "logo")
	})

	t.Run("invalid body", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/orders", "not an object", token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrderHandler_List(t *testing.T) {
	router, tc := setupTestRouter(t, nil)
	token := tc.Token(t, auth.RoleDesigner, 0)

	// NewTestContext already holds one designed order
	testutil.CreateTestOrder(t, tc.Service, "Globex")

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?status=pending", 1},
		{"?status=designed", 1},
	}

	for _, tt := range tests {
		t.Run("filter "+tt.query, func(t *testing.T) {
			req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/orders"+tt.query, nil, token)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			testutil.AssertStatus(t, rr, http.StatusOK)

			var resp dto.ListResponse[dto.OrderResponse]
			testutil.ParseJSONResponse(t, rr, &resp)
			assert.Equal(t, tt.want, resp.Total)
			assert.Len(t, resp.Data, tt.want)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/orders?status=shipped", nil, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOrderHandler_SubmitDesign(t *testing.T) {
	router, tc := setupTestRouter(t, nil)
	token := tc.Token(t, auth.RoleDesigner, 0)
	order := testutil.CreateTestOrder(t, tc.Service, "Globex")
	path := "/api/v1/orders/" + idStr(order.ID) + "/design"

	t.Run("designs a pending order", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", path, map[string]string{"template": "modern"}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)

		var resp dto.DesignResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, idStr(order.ID), resp.OrderID)
		assert.Equal(t, "modern", resp.Template)

		orders := tc.Service.ListOrders(req.Context(), "designed")
		assert.Len(t, orders, 2)
	})

	t.Run("second design conflicts", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", path, map[string]string{"template": "bold"}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Len(t, tc.Service.ListDesigns(req.Context()), 2)
	})

	t.Run("unknown order", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/orders/424242/design", map[string]string{"template": "bold"}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/orders/abc/design", map[string]string{"template": "bold"}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("blank template", func(t *testing.T) {
		other := testutil.CreateTestOrder(t, tc.Service, "Hooli")
		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/orders/"+idStr(other.ID)+"/design", map[string]string{"template": " "}, token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Contains(t, resp.Details, "template")
	})
}
