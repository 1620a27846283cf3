package models

import "time"

// Subscriber is a single email signup. Email is stored normalized
// (trimmed, lowercased) and is unique at the storage layer.
type Subscriber struct {
	ID        string    `bson:"-" json:"id,omitempty"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
