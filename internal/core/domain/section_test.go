package domain

import (
	"reflect"
	"testing"
)

func TestParseTier(t *testing.T) {
	cases := []struct {
		in      string
		want    AccessTier
		wantErr bool
	}{
		{"", AccessFree, false},
		{"free", AccessFree, false},
		{"premium", AccessPremium, false},
		{"gold", "", true},
		{"Premium", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTier(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeStore_Normalizes(t *testing.T) {
	raw := []byte(`{
		"plain": {"icon": "📦", "items": ["a", "b"]},
		"vip": {"icon": "⭐", "items": [], "access": "premium"},
		"bare": {}
	}`)

	store, err := DecodeStore(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if store["plain"].Name != "plain" || store["plain"].Access != AccessFree {
		t.Errorf("unexpected plain section: %+v", store["plain"])
	}
	if store["vip"].Access != AccessPremium {
		t.Errorf("expected premium tier, got %q", store["vip"].Access)
	}
	if store["bare"].Items == nil {
		t.Error("expected non-nil items for bare section")
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	store := Store{
		"netflix": {Name: "netflix", Icon: "📦", Items: []string{"a", "b", "a"}, Access: AccessFree},
	}

	data, err := EncodeStore(store, true)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	back, err := DecodeStore(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(back, store) {
		t.Errorf("round trip mismatch: %v != %v", back, store)
	}
}

func TestRoleSet(t *testing.T) {
	roles := NewRoleSet("a", "b")

	if !roles.Has("a") || roles.Has("c") {
		t.Error("unexpected membership")
	}
	if !roles.HasAny(NewRoleSet("c", "b")) {
		t.Error("expected overlap with {c,b}")
	}
	if roles.HasAny(NewRoleSet("x")) {
		t.Error("expected no overlap with {x}")
	}
	if roles.HasAny(NewRoleSet()) {
		t.Error("expected no overlap with empty set")
	}
}
