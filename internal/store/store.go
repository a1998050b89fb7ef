// Package store persists the per-chat ledger records.
package store

import (
	"context"

	"github.com/paisabot-dev/paisabot/internal/model"
)

// Store is the persistence seam for ledger records. Implementations must
// serialize Update calls for the same chat so read-modify-write sequences
// from rapid duplicate messages cannot interleave.
type Store interface {
	// GetOrCreate returns the record for a chat, inserting a zeroed one for a
	// previously unseen chat. Creation alone is not persisted; records reach
	// durable storage on the first mutating Update.
	GetOrCreate(ctx context.Context, chatID int64) (model.Record, error)

	// Update applies mutate to the chat's record (creating it if needed) and
	// persists the result before returning it.
	Update(ctx context.Context, chatID int64, mutate func(*model.Record)) (model.Record, error)
}
