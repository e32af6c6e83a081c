package models

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusDesigned OrderStatus = "designed" // terminal
)

// Order is a company's request for a business-card design.
type Order struct {
	Base
	CompanyName string      `gorm:"not null" json:"company_name"`
	BrandColors string      `gorm:"not null" json:"brand_colors"`
	Logo        string      `json:"logo,omitempty"`
	Status      OrderStatus `gorm:"not null;index;default:'pending'" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}

// Design is a template produced against exactly one Order.
type Design struct {
	Base
	OrderID  int64  `gorm:"index;not null" json:"order_id"`
	Template string `gorm:"not null" json:"template"`
}

func (Design) TableName() string {
	return "designs"
}
