package service

import (
	"context"
	"time"

	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/port"
)

const (
	DefaultFreeCooldown    = 60 * time.Minute
	DefaultPremiumCooldown = 5 * time.Minute
)

// CooldownTracker enforces the minimum wait between successful allocations.
// The wait is per principal across all sections; premium roles get the
// shorter wait. Time is passed in by the caller so tests can simulate
// elapsed cooldowns without waiting.
type CooldownTracker struct {
	repo         port.CooldownRepository
	premiumRoles domain.RoleSet
	freeWait     time.Duration
	premiumWait  time.Duration
}

func NewCooldownTracker(repo port.CooldownRepository, premiumRoles domain.RoleSet, freeWait, premiumWait time.Duration) *CooldownTracker {
	if freeWait <= 0 {
		freeWait = DefaultFreeCooldown
	}
	if premiumWait <= 0 {
		premiumWait = DefaultPremiumCooldown
	}
	return &CooldownTracker{
		repo:         repo,
		premiumRoles: premiumRoles,
		freeWait:     freeWait,
		premiumWait:  premiumWait,
	}
}

// Duration returns the cooldown applied to a caller holding roles.
func (t *CooldownTracker) Duration(roles domain.RoleSet) time.Duration {
	if roles.HasAny(t.premiumRoles) {
		return t.premiumWait
	}
	return t.freeWait
}

// Remaining returns how long the principal must still wait before the next
// allocation, or zero if it may allocate now.
func (t *CooldownTracker) Remaining(ctx context.Context, principalID string, roles domain.RoleSet, now time.Time) (time.Duration, error) {
	last, ok, err := t.repo.LastAllocation(ctx, principalID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	remaining := t.Duration(roles) - now.Sub(last)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Record marks a successful allocation at now.
func (t *CooldownTracker) Record(ctx context.Context, principalID string, now time.Time) error {
	return t.repo.Record(ctx, principalID, now)
}
