package domain

import (
	"time"
)

// Review represents a product review submitted by a user. The JSON field
// names follow the shopping frontend's wire format.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
