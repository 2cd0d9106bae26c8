package service

import (
	"fmt"

	"github.com/rl1809/stock-gen/internal/core/domain"
)

// AccessPolicy decides whether a caller's role set may draw from a section.
// Role identifiers come from configuration, never from code.
type AccessPolicy struct {
	// FreeGenRole gates every allocation, free and premium alike.
	FreeGenRole string

	// PremiumRoles is the set of roles any one of which unlocks premium
	// sections, on top of the base gate.
	PremiumRoles domain.RoleSet
}

// Authorize returns nil when roles may draw from a section of the given
// tier, or ErrAccessDenied wrapped with the missing requirement. The base
// gate is checked first: without it even free sections are denied.
func (p AccessPolicy) Authorize(tier domain.AccessTier, roles domain.RoleSet) error {
	if !roles.Has(p.FreeGenRole) {
		return fmt.Errorf("%w: missing free generator role", ErrAccessDenied)
	}
	if tier == domain.AccessPremium && !roles.HasAny(p.PremiumRoles) {
		return fmt.Errorf("%w: missing premium role", ErrAccessDenied)
	}
	return nil
}

// Allows is the boolean form of Authorize.
func (p AccessPolicy) Allows(tier domain.AccessTier, roles domain.RoleSet) bool {
	return p.Authorize(tier, roles) == nil
}
