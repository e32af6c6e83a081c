package models

import "time"

type RequestStatus string

// RequestStatusPending is the only state a stored request can be in;
// accepted and rejected requests are removed.
const RequestStatusPending RequestStatus = "pending"

// ConnectionRequest is a directed proposal from one card to another.
type ConnectionRequest struct {
	Base
	FromCardID  int64         `gorm:"index;not null" json:"from_card_id"`
	ToCardID    int64         `gorm:"index;not null" json:"to_card_id"`
	FromName    string        `json:"from_name"`    // snapshot at send time
	FromCompany string        `json:"from_company"` // snapshot at send time
	Status      RequestStatus `gorm:"not null;default:'pending'" json:"status"`
}

func (ConnectionRequest) TableName() string {
	return "connection_requests"
}

// Connection is an undirected edge between two cards.
type Connection struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CardID1     int64     `gorm:"column:card_id1;index;not null" json:"card_id1"`
	CardID2     int64     `gorm:"column:card_id2;index;not null" json:"card_id2"`
	ConnectedAt time.Time `gorm:"not null" json:"connected_at"`
}

func (Connection) TableName() string {
	return "connections"
}

// Involves reports whether cardID is either endpoint.
func (c Connection) Involves(cardID int64) bool {
	return c.CardID1 == cardID || c.CardID2 == cardID
}

// Other returns the endpoint opposite cardID.
func (c Connection) Other(cardID int64) int64 {
	if c.CardID1 == cardID {
		return c.CardID2
	}
	return c.CardID1
}

// Links reports whether the edge joins a and b in either direction.
func (c Connection) Links(a, b int64) bool {
	return (c.CardID1 == a && c.CardID2 == b) || (c.CardID1 == b && c.CardID2 == a)
}
