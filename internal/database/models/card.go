package models

import "time"

// Card is an issued business card bound to one employee.
// CompanyName, BrandColors and Template are copied from the Order and Design
// at issuance and do not follow later changes to either.
type Card struct {
	Base
	Name        string    `gorm:"not null" json:"name"`
	Title       string    `gorm:"not null" json:"title"`
	Email       string    `gorm:"not null" json:"email"`
	Phone       string    `json:"phone,omitempty"`
	DesignID    int64     `gorm:"index;not null" json:"design_id"`
	CompanyName string    `gorm:"not null" json:"company_name"`
	BrandColors string    `json:"brand_colors"`
	Template    string    `json:"template"`
	ShareCode   string    `gorm:"uniqueIndex;size:8;not null" json:"share_code"`
	IsPublic    bool      `gorm:"default:false;index" json:"is_public"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Card) TableName() string {
	return "cards"
}
