// Package repository declares the storage contracts the services depend
// on. Backends translate their driver's uniqueness-violation signal into
// models.ErrDuplicateEmail so duplicate handling is written once.
package repository

import (
	"context"

	"github.com/startuplab/landing-api/internal/models"
)

// SubscriberRepository inserts unique email records. The uniqueness
// guarantee comes from a storage-layer constraint, not from a pre-check.
type SubscriberRepository interface {
	Create(ctx context.Context, email string) (models.Subscriber, error)
}

// ContactRepository inserts contact messages. No uniqueness semantics.
type ContactRepository interface {
	Create(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
}
