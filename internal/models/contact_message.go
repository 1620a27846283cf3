package models

import "time"

// ContactMessage is one contact-form submission. Duplicates are allowed,
// every valid submission is stored.
type ContactMessage struct {
	ID        string    `bson:"-" json:"id,omitempty"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
