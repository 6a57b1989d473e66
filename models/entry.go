package models

import "time"

// OrderEntry is a raw key/value row of the order store
type OrderEntry struct {
	Key       string    `json:"key" gorm:"column:entry_key;primaryKey;size:191"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
