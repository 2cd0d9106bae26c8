package port

import (
	"context"
	"time"
)

type CooldownRepository interface {
	// LastAllocation returns when the principal last drew an item. ok is
	// false when the principal has never allocated.
	LastAllocation(ctx context.Context, principalID string) (at time.Time, ok bool, err error)

	// Record stores the allocation timestamp. Called only after a successful
	// commit, never on a rejected attempt.
	Record(ctx context.Context, principalID string, at time.Time) error
}
