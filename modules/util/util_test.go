package util

import (
	"testing"

	"github.com/gofrs/uuid"
)

func TestSwapUUIDEndianess(t *testing.T) {
	u := uuid.Must(uuid.FromString("00299570-246d-11d0-a768-00aa006e0529"))
	swapped := SwapUUIDEndianess(u)
	if swapped.String() != "70952900-6d24-d011-a768-00aa006e0529" {
		t.Errorf("SwapUUIDEndianess() = %v", swapped)
	}
	if SwapUUIDEndianess(swapped) != u {
		t.Error("SwapUUIDEndianess() is not its own inverse")
	}
}

func TestParentDistinguishedName(t *testing.T) {
	tests := []struct {
		dn   string
		want string
	}{
		{"CN=Bob,OU=Users,DC=corp,DC=local", "OU=Users,DC=corp,DC=local"},
		{"CN=Smith\\, Bob,OU=Users,DC=corp,DC=local", "OU=Users,DC=corp,DC=local"},
		{"DC=local", ""},
	}
	for _, tt := range tests {
		if got := ParentDistinguishedName(tt.dn); got != tt.want {
			t.Errorf("ParentDistinguishedName(%v) = %v, want %v", tt.dn, got, tt.want)
		}
	}
}

func TestDomainSuffixToDomainContext(t *testing.T) {
	if got := DomainSuffixToDomainContext("Corp.Example.LOCAL"); got != "dc=corp,dc=example,dc=local" {
		t.Errorf("DomainSuffixToDomainContext() = %v", got)
	}
}

func TestDefault(t *testing.T) {
	if got := Default("", "", "fallback"); got != "fallback" {
		t.Errorf("Default() = %v", got)
	}
	if got := Default("first", "second"); got != "first" {
		t.Errorf("Default() = %v", got)
	}
	if got := Default(); got != "" {
		t.Errorf("Default() = %v, want empty", got)
	}
}
