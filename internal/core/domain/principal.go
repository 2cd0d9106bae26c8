package domain

// RoleSet is the set of role identifiers a principal holds. Role resolution
// happens at the adapter; the engine only compares identifiers.
type RoleSet map[string]struct{}

func NewRoleSet(ids ...string) RoleSet {
	set := make(RoleSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (r RoleSet) Has(id string) bool {
	_, ok := r[id]
	return ok
}

func (r RoleSet) HasAny(other RoleSet) bool {
	for id := range other {
		if r.Has(id) {
			return true
		}
	}
	return false
}

// Principal is the identity behind an allocation request.
type Principal struct {
	ID    string
	Roles RoleSet
}
