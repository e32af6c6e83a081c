package dto

import (
	"strconv"
	"time"

	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/database/models"
)

// IDs are rendered as strings: snowflake values do not fit a JavaScript number.

type PlaceOrderRequest struct {
	CompanyName string `json:"company_name"`
	BrandColors string `json:"brand_colors"`
	Logo        string `json:"logo,omitempty"`
}

func (r PlaceOrderRequest) Input() cardnet.PlaceOrderInput {
	return cardnet.PlaceOrderInput{
		CompanyName: r.CompanyName,
		BrandColors: r.BrandColors,
		Logo:        r.Logo,
	}
}

type SubmitDesignRequest struct {
	Template string `json:"template"`
}

type AssignCardRequest struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (r AssignCardRequest) Input() cardnet.AssignCardInput {
	return cardnet.AssignCardInput{
		Name:  r.Name,
		Title: r.Title,
		Email: r.Email,
		Phone: r.Phone,
	}
}

type UpdateJobRequest struct {
	CompanyName string `json:"company_name"`
	Title       string `json:"title"`
}

type SendRequestRequest struct {
	ToCardID int64 `json:"to_card_id,string"`
}

func (r SendRequestRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.ToCardID == 0 {
		errors["to_card_id"] = "is required"
	}
	return errors
}

type OrderResponse struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	BrandColors string `json:"brand_colors"`
	Logo        string `json:"logo,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func OrderFromModel(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:          formatID(o.ID),
		CompanyName: o.CompanyName,
		BrandColors: o.BrandColors,
		Logo:        o.Logo,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
}

type DesignResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Template  string `json:"template"`
	CreatedAt string `json:"created_at"`
}

func DesignFromModel(d *models.Design) DesignResponse {
	return DesignResponse{
		ID:        formatID(d.ID),
		OrderID:   formatID(d.OrderID),
		Template:  d.Template,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}

type CardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	DesignID    string `json:"design_id"`
	CompanyName string `json:"company_name"`
	BrandColors string `json:"brand_colors"`
	Template    string `json:"template"`
	ShareCode   string `json:"share_code,omitempty"`
	IsPublic    bool   `json:"is_public"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CardFromModel renders a card. The share code is a capability and is only
// included when withCode is set.
func CardFromModel(c *models.Card, withCode bool) CardResponse {
	resp := CardResponse{
		ID:          formatID(c.ID),
		Name:        c.Name,
		Title:       c.Title,
		Email:       c.Email,
		Phone:       c.Phone,
		DesignID:    formatID(c.DesignID),
		CompanyName: c.CompanyName,
		BrandColors: c.BrandColors,
		Template:    c.Template,
		IsPublic:    c.IsPublic,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if withCode {
		resp.ShareCode = c.ShareCode
	}
	return resp
}

func CardsFromModels(cards []models.Card, withCode bool) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i := range cards {
		out[i] = CardFromModel(&cards[i], withCode)
	}
	return out
}

type JobUpdateResponse struct {
	Card          CardResponse `json:"card"`
	NotifiedCount int          `json:"notified_count"`
}

type ConnectionRequestResponse struct {
	ID          string `json:"id"`
	FromCardID  string `json:"from_card_id"`
	ToCardID    string `json:"to_card_id"`
	FromName    string `json:"from_name"`
	FromCompany string `json:"from_company"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func ConnectionRequestFromModel(r *models.ConnectionRequest) ConnectionRequestResponse {
	return ConnectionRequestResponse{
		ID:          formatID(r.ID),
		FromCardID:  formatID(r.FromCardID),
		ToCardID:    formatID(r.ToCardID),
		FromName:    r.FromName,
		FromCompany: r.FromCompany,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func ConnectionRequestsFromModels(reqs []models.ConnectionRequest) []ConnectionRequestResponse {
	out := make([]ConnectionRequestResponse, len(reqs))
	for i := range reqs {
		out[i] = ConnectionRequestFromModel(&reqs[i])
	}
	return out
}

type ConnectionResponse struct {
	ID          string `json:"id"`
	CardID1     string `json:"card_id1"`
	CardID2     string `json:"card_id2"`
	ConnectedAt string `json:"connected_at"`
}

func ConnectionFromModel(c *models.Connection) ConnectionResponse {
	return ConnectionResponse{
		ID:          formatID(c.ID),
		CardID1:     formatID(c.CardID1),
		CardID2:     formatID(c.CardID2),
		ConnectedAt: c.ConnectedAt.Format(time.RFC3339),
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
