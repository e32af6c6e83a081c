package models

import "time"

// Base carries the time-derived identifier and creation timestamp shared by
// every record. IDs are assigned by the caller, never by the database.
type Base struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
