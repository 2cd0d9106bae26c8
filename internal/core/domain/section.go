package domain

import (
	"encoding/json"
	"fmt"
)

type AccessTier string

const (
	AccessFree    AccessTier = "free"
	AccessPremium AccessTier = "premium"
)

// ParseTier validates a raw tier string, defaulting empty input to free.
func ParseTier(raw string) (AccessTier, error) {
	switch AccessTier(raw) {
	case "":
		return AccessFree, nil
	case AccessFree:
		return AccessFree, nil
	case AccessPremium:
		return AccessPremium, nil
	}
	return "", fmt.Errorf("invalid access tier %q", raw)
}

// Section is a named FIFO queue of dispensable items. Items are opaque
// strings; duplicates are allowed. Name is the store key and never changes
// after creation.
type Section struct {
	Name   string     `json:"-"`
	Icon   string     `json:"icon"`
	Items  []string   `json:"items"`
	Access AccessTier `json:"access"`
}

// Store maps section name to section. Keys always equal Section.Name.
type Store map[string]*Section

// DecodeStore parses the persisted document. Sections with a missing or
// unknown access tier come back as free, and Items is never nil.
func DecodeStore(data []byte) (Store, error) {
	store := Store{}
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("decode stock document: %w", err)
	}
	for name, sec := range store {
		sec.Name = name
		if sec.Access != AccessPremium {
			sec.Access = AccessFree
		}
		if sec.Items == nil {
			sec.Items = []string{}
		}
	}
	return store, nil
}

// EncodeStore renders the store as the persisted document.
func EncodeStore(store Store, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(store, "", "  ")
	} else {
		data, err = json.Marshal(store)
	}
	if err != nil {
		return nil, fmt.Errorf("encode stock document: %w", err)
	}
	return data, nil
}
