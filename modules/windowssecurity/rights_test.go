package windowssecurity

import (
	"reflect"
	"testing"
)

func TestMaskRights(t *testing.T) {
	tests := []struct {
		name string
		mask Mask
		want []string
	}{
		{"single standard", RIGHT_READ_CONTROL, []string{"ReadControl"}},
		{"single directory", RIGHT_DS_WRITE_PROPERTY, []string{"WriteProperty"}},
		{"generic all", RIGHT_GENERIC_ALL, []string{"GenericAll"}},
		{"full control 0xF01FF", Mask(0x000F01FF), []string{
			"WriteDacl", "WriteOwner", "Delete", "ReadControl",
			"CreateChild", "DeleteChild", "ListContents", "Self",
			"ReadProperty", "WriteProperty", "DeleteTree", "ListObject",
			"ExtendedRight",
		}},
		{"broad before narrow", RIGHT_DS_CREATE_CHILD | RIGHT_GENERIC_ALL, []string{"GenericAll", "CreateChild"}},
		{"zero mask", Mask(0), []string{"0x00000000"}},
		{"only unnamed bits", Mask(0x00000600), []string{"0x00000600"}},
		{"synchronize is unnamed", RIGHT_SYNCHRONIZE, []string{"0x00100000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.Rights(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rights() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaskRightsNeverMixesHex(t *testing.T) {
	// A named bit plus unnamed bits must decode to named tokens only.
	got := (RIGHT_READ_CONTROL | RIGHT_SYNCHRONIZE).Rights()
	if !reflect.DeepEqual(got, []string{"ReadControl"}) {
		t.Errorf("Rights() = %v, want [ReadControl]", got)
	}
}

func TestIsDangerous(t *testing.T) {
	tests := []struct {
		name   string
		rights []string
		want   bool
	}{
		{"generic all", []string{"GenericAll"}, true},
		{"write dacl among others", []string{"ReadControl", "WriteDacl"}, true},
		{"read only", []string{"ReadControl", "ReadProperty", "ListContents"}, false},
		{"hex fallback", []string{"0x00100000"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDangerous(tt.rights); got != tt.want {
				t.Errorf("IsDangerous(%v) = %v, want %v", tt.rights, got, tt.want)
			}
		})
	}
}

func TestRightGUIDLabel(t *testing.T) {
	if got := RightGUIDLabel("00299570-246d-11d0-a768-00aa006e0529"); got != "Reset Password" {
		t.Errorf("RightGUIDLabel() = %v, want Reset Password", got)
	}
	if got := RightGUIDLabel("00000000-0000-0000-0000-000000000000"); got != "All Properties" {
		t.Errorf("RightGUIDLabel() = %v, want All Properties", got)
	}
	unknown := "deadbeef-0000-0000-0000-000000000000"
	if got := RightGUIDLabel(unknown); got != unknown {
		t.Errorf("RightGUIDLabel() = %v, want the GUID itself", got)
	}
}
