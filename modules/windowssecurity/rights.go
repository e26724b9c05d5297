package windowssecurity

import "fmt"

type Mask uint32

// Access mask bits as stored in AD security descriptors, see MS-ADTS 5.1.3.2
const (
	RIGHT_DS_CREATE_CHILD   Mask = 0x00000001
	RIGHT_DS_DELETE_CHILD   Mask = 0x00000002
	RIGHT_DS_LIST_CONTENTS  Mask = 0x00000004
	RIGHT_DS_SELF           Mask = 0x00000008
	RIGHT_DS_READ_PROPERTY  Mask = 0x00000010
	RIGHT_DS_WRITE_PROPERTY Mask = 0x00000020
	RIGHT_DS_DELETE_TREE    Mask = 0x00000040
	RIGHT_DS_LIST_OBJECT    Mask = 0x00000080
	RIGHT_DS_CONTROL_ACCESS Mask = 0x00000100

	RIGHT_DELETE       Mask = 0x00010000
	RIGHT_READ_CONTROL Mask = 0x00020000
	RIGHT_WRITE_DACL   Mask = 0x00040000
	RIGHT_WRITE_OWNER  Mask = 0x00080000
	RIGHT_SYNCHRONIZE  Mask = 0x00100000

	RIGHT_GENERIC_ALL     Mask = 0x10000000
	RIGHT_GENERIC_EXECUTE Mask = 0x20000000
	RIGHT_GENERIC_WRITE   Mask = 0x40000000
	RIGHT_GENERIC_READ    Mask = 0x80000000
)

// rightNames is walked in this fixed order so decoded output is
// deterministic regardless of bit position. Broad grants first, then
// standard rights, then the directory specific bits.
var rightNames = []struct {
	bit  Mask
	name string
}{
	{RIGHT_GENERIC_ALL, "GenericAll"},
	{RIGHT_GENERIC_EXECUTE, "GenericExecute"},
	{RIGHT_GENERIC_WRITE, "GenericWrite"},
	{RIGHT_GENERIC_READ, "GenericRead"},
	{RIGHT_WRITE_DACL, "WriteDacl"},
	{RIGHT_WRITE_OWNER, "WriteOwner"},
	{RIGHT_DELETE, "Delete"},
	{RIGHT_READ_CONTROL, "ReadControl"},
	{RIGHT_DS_CREATE_CHILD, "CreateChild"},
	{RIGHT_DS_DELETE_CHILD, "DeleteChild"},
	{RIGHT_DS_LIST_CONTENTS, "ListContents"},
	{RIGHT_DS_SELF, "Self"},
	{RIGHT_DS_READ_PROPERTY, "ReadProperty"},
	{RIGHT_DS_WRITE_PROPERTY, "WriteProperty"},
	{RIGHT_DS_DELETE_TREE, "DeleteTree"},
	{RIGHT_DS_LIST_OBJECT, "ListObject"},
	{RIGHT_DS_CONTROL_ACCESS, "ExtendedRight"},
}

// Rights decodes the mask to named rights. A mask matching no named bit
// yields a single hex token; named and hex tokens are never mixed.
func (m Mask) Rights() []string {
	var rights []string
	for _, entry := range rightNames {
		if m&entry.bit != 0 {
			rights = append(rights, entry.name)
		}
	}
	if len(rights) == 0 {
		rights = append(rights, fmt.Sprintf("0x%08X", uint32(m)))
	}
	return rights
}

// Rights that let a trustee take over or materially change an object.
// Flagged so delegation reports can surface risky grants.
var DangerousRights = map[string]struct{}{
	"GenericAll":    {},
	"GenericWrite":  {},
	"WriteDacl":     {},
	"WriteOwner":    {},
	"WriteProperty": {},
	"ExtendedRight": {},
	"Self":          {},
}

func IsDangerous(rights []string) bool {
	for _, r := range rights {
		if _, found := DangerousRights[r]; found {
			return true
		}
	}
	return false
}

// KnownRightGUIDs maps well-known extended right and property set GUIDs
// to display labels. Immutable after process start.
var KnownRightGUIDs = map[string]string{
	"00000000-0000-0000-0000-000000000000": "All Properties",
	"00299570-246d-11d0-a768-00aa006e0529": "Reset Password",
	"ab721a53-1e2f-11d0-9819-00aa0040529b": "Change Password",
	"ab721a54-1e2f-11d0-9819-00aa0040529b": "Send As",
	"ab721a56-1e2f-11d0-9819-00aa0040529b": "Receive As",
	"bf9679c0-0de6-11d0-a285-00aa003049e2": "memberOf",
	"bf967a86-0de6-11d0-a285-00aa003049e2": "unicodePwd",
	"1131f6aa-9c07-11d1-f79f-00c04fc2dcd2": "DS-Replication-Get-Changes",
	"1131f6ad-9c07-11d1-f79f-00c04fc2dcd2": "DS-Replication-Get-Changes-All",
	"89e95b76-444d-4c62-991a-0facbeda640c": "DS-Replication-Get-Changes-In-Filtered-Set",
	"ccc2dc7d-a6ad-4a7a-8846-c04e3cc53501": "Unexpire Password",
	"4c164200-20c0-11d0-a768-00aa006e0529": "User Account Restrictions",
	"5f202010-79a5-11d0-9020-00c04fc2d4cf": "User Logon Information",
	"59ba2f42-79a2-11d0-9020-00c04fc2d4cf": "General Information",
	"bc0ac240-79a9-11d0-9020-00c04fc2d4cf": "Group Membership",
	"e48d0154-bcf8-11d1-8702-00c04fb96050": "Public Information",
	"77b5b886-944a-11d1-aebd-0000f80367c1": "Personal Information",
	"e45795b2-9455-11d1-aebd-0000f80367c1": "Email Information",
	"a1990816-4298-11d1-ade2-00c04fd8d5cd": "Open Address List",
	"f30e3bc1-9ff0-11d1-b603-0000f80367c1": "GPC-File-Sys-Path",
}

// RightGUIDLabel returns the display label for a well-known right or
// property set GUID, or the GUID string itself when unknown.
func RightGUIDLabel(guid string) string {
	if label, found := KnownRightGUIDs[guid]; found {
		return label
	}
	return guid
}
