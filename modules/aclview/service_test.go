package aclview

import (
	"encoding/binary"
	"testing"

	"github.com/chrisdfennell/ad-tools/modules/directory"
	"github.com/chrisdfennell/ad-tools/modules/windowssecurity"
	"github.com/pkg/errors"
)

type fakeSession struct {
	entries      map[string]directory.Entry
	ous          []directory.Entry
	fetchErr     error
	names        map[string]string
	lookupCalls  map[string]int
	disconnected bool
}

func (f *fakeSession) FetchSecurityDescriptor(dn string) (directory.Entry, error) {
	if f.fetchErr != nil {
		return directory.Entry{}, f.fetchErr
	}
	entry, found := f.entries[dn]
	if !found {
		return directory.Entry{}, errors.Wrapf(directory.ErrNotFound, "fetching %v", dn)
	}
	return entry, nil
}

func (f *fakeSession) OrganizationalUnits() ([]directory.Entry, error) {
	return f.ous, nil
}

func (f *fakeSession) LookupSID(sid string) (string, bool) {
	if f.lookupCalls == nil {
		f.lookupCalls = make(map[string]int)
	}
	f.lookupCalls[sid]++
	name, found := f.names[sid]
	return name, found
}

func (f *fakeSession) Disconnect() error {
	f.disconnected = true
	return nil
}

func serviceFor(fake *fakeSession) *Service {
	return NewService(func() (Session, error) {
		return fake, nil
	})
}

func simpleACE(acetype, aceflags byte, mask uint32, sid string) []byte {
	sidbytes := windowssecurity.MustParseStringSID(sid).Bytes()
	buf := make([]byte, 8+len(sidbytes))
	buf[0] = acetype
	buf[1] = aceflags
	binary.LittleEndian.PutUint16(buf[2:], uint16(len(buf)))
	binary.LittleEndian.PutUint32(buf[4:], mask)
	copy(buf[8:], sidbytes)
	return buf
}

func descriptorWithACEs(aces ...[]byte) []byte {
	var body []byte
	for _, ace := range aces {
		body = append(body, ace...)
	}
	out := make([]byte, 20)
	out[0] = 1
	binary.LittleEndian.PutUint16(out[2:], 0x8004)
	binary.LittleEndian.PutUint32(out[16:], 20)

	dacl := make([]byte, 8)
	dacl[0] = 4
	binary.LittleEndian.PutUint16(dacl[2:], uint16(8+len(body)))
	binary.LittleEndian.PutUint16(dacl[4:], uint16(len(aces)))

	out = append(out, dacl...)
	return append(out, body...)
}

func TestGetObjectACL(t *testing.T) {
	dn := "CN=Finance,OU=Groups,DC=corp,DC=local"
	fake := &fakeSession{
		entries: map[string]directory.Entry{
			dn: {
				DN:   dn,
				Name: "Finance",
				Descriptor: descriptorWithACEs(
					simpleACE(windowssecurity.ACETYPE_ACCESS_ALLOWED, 0, uint32(windowssecurity.RIGHT_READ_CONTROL), "S-1-1-0"),
				),
			},
		},
	}

	result, err := serviceFor(fake).GetObjectACL(dn)
	if err != nil {
		t.Fatalf("GetObjectACL() error: %v", err)
	}
	if result.Name != "Finance" || result.DN != dn {
		t.Errorf("result identity = %v / %v", result.Name, result.DN)
	}
	if len(result.ACEs) != 1 {
		t.Fatalf("got %v ACEs, want 1", len(result.ACEs))
	}
	ace := result.ACEs[0]
	if ace.Type != "Allow" {
		t.Errorf("Type = %v, want Allow", ace.Type)
	}
	if ace.TrusteeSID != "S-1-1-0" || ace.TrusteeName != "Everyone" {
		t.Errorf("trustee = %v (%v), want Everyone (S-1-1-0)", ace.TrusteeName, ace.TrusteeSID)
	}
	if len(ace.Rights) != 1 || ace.Rights[0] != "ReadControl" {
		t.Errorf("Rights = %v, want [ReadControl]", ace.Rights)
	}
	if ace.AccessMask != 0x00020000 {
		t.Errorf("AccessMask = %08x, want 00020000", ace.AccessMask)
	}
	if ace.Inherited || ace.Dangerous {
		t.Errorf("Inherited/Dangerous = %v/%v, want false/false", ace.Inherited, ace.Dangerous)
	}
	if ace.ObjectTypeGUID != "" {
		t.Errorf("ObjectTypeGUID = %v, want empty for a simple ACE", ace.ObjectTypeGUID)
	}
	if !fake.disconnected {
		t.Error("session was not released")
	}
	// Well-known trustees never hit the directory.
	if fake.lookupCalls["S-1-1-0"] != 0 {
		t.Errorf("LookupSID called %v times for a well-known SID", fake.lookupCalls["S-1-1-0"])
	}
}

func TestGetObjectACLNotFound(t *testing.T) {
	fake := &fakeSession{entries: map[string]directory.Entry{}}
	_, err := serviceFor(fake).GetObjectACL("CN=Missing,DC=corp,DC=local")
	if !errors.Is(err, directory.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if !fake.disconnected {
		t.Error("session was not released on the error path")
	}
}

func TestGetObjectACLNoDescriptor(t *testing.T) {
	fake := &fakeSession{fetchErr: directory.ErrNoDescriptor}
	_, err := serviceFor(fake).GetObjectACL("CN=Hidden,DC=corp,DC=local")
	if !errors.Is(err, directory.ErrNoDescriptor) {
		t.Errorf("error = %v, want ErrNoDescriptor", err)
	}
}

func TestGetObjectACLConnectFailure(t *testing.T) {
	boom := errors.New("directory unreachable")
	svc := NewService(func() (Session, error) {
		return nil, boom
	})
	_, err := svc.GetObjectACL("CN=Whatever,DC=corp,DC=local")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want the connect failure wrapped", err)
	}
}

func TestTrusteeResolution(t *testing.T) {
	dn := "CN=Server01,OU=Servers,DC=corp,DC=local"
	admin := "S-1-5-21-1-2-3-1105"
	ghost := "S-1-5-21-1-2-3-9999"
	fake := &fakeSession{
		entries: map[string]directory.Entry{
			dn: {
				DN:   dn,
				Name: "Server01",
				Descriptor: descriptorWithACEs(
					simpleACE(windowssecurity.ACETYPE_ACCESS_ALLOWED, 0, uint32(windowssecurity.RIGHT_GENERIC_ALL), admin),
					simpleACE(windowssecurity.ACETYPE_ACCESS_ALLOWED, 0, uint32(windowssecurity.RIGHT_READ_CONTROL), admin),
					simpleACE(windowssecurity.ACETYPE_ACCESS_ALLOWED, 0, uint32(windowssecurity.RIGHT_READ_CONTROL), ghost),
				),
			},
		},
		names: map[string]string{admin: "svc-backup"},
	}

	result, err := serviceFor(fake).GetObjectACL(dn)
	if err != nil {
		t.Fatalf("GetObjectACL() error: %v", err)
	}
	if len(result.ACEs) != 3 {
		t.Fatalf("got %v ACEs, want 3", len(result.ACEs))
	}
	if result.ACEs[0].TrusteeName != "svc-backup" || result.ACEs[1].TrusteeName != "svc-backup" {
		t.Errorf("resolved names = %v, %v, want svc-backup twice", result.ACEs[0].TrusteeName, result.ACEs[1].TrusteeName)
	}
	if fake.lookupCalls[admin] != 1 {
		t.Errorf("LookupSID(%v) called %v times, want 1 (memoized)", admin, fake.lookupCalls[admin])
	}
	// Unresolvable trustees render as the SID itself, also memoized.
	if result.ACEs[2].TrusteeName != ghost {
		t.Errorf("unresolved trustee = %v, want %v", result.ACEs[2].TrusteeName, ghost)
	}
	if fake.lookupCalls[ghost] != 1 {
		t.Errorf("LookupSID(%v) called %v times, want 1", ghost, fake.lookupCalls[ghost])
	}
	if !result.ACEs[0].Dangerous {
		t.Error("GenericAll grant not flagged dangerous")
	}
}

func TestOUDelegations(t *testing.T) {
	helpdesk := "S-1-5-21-1-2-3-1203"
	fake := &fakeSession{
		ous: []directory.Entry{
			{
				DN:   "OU=Workstations,DC=corp,DC=local",
				Name: "Workstations",
				Descriptor: descriptorWithACEs(
					simpleACE(windowssecurity.ACETYPE_ACCESS_ALLOWED, windowssecurity.ACEFLAG_INHERITED_ACE, uint32(windowssecurity.RIGHT_GENERIC_ALL), "S-1-5-18"),
					simpleACE(windowssecurity.ACETYPE_ACCESS_ALLOWED, 0, uint32(windowssecurity.RIGHT_DS_WRITE_PROPERTY), helpdesk),
				),
			},
			{
				DN:   "OU=Empty,DC=corp,DC=local",
				Name: "Empty",
				// unreadable descriptor, skipped
			},
		},
		names: map[string]string{helpdesk: "HelpDesk"},
	}

	delegations, err := serviceFor(fake).OUDelegations()
	if err != nil {
		t.Fatalf("OUDelegations() error: %v", err)
	}
	if len(delegations) != 1 {
		t.Fatalf("got %v delegations, want 1 (inherited entries excluded)", len(delegations))
	}
	d := delegations[0]
	if d.OUName != "Workstations" || d.OUDN != "OU=Workstations,DC=corp,DC=local" {
		t.Errorf("delegation target = %v / %v", d.OUName, d.OUDN)
	}
	if d.TrusteeName != "HelpDesk" {
		t.Errorf("trustee = %v, want HelpDesk", d.TrusteeName)
	}
	if !d.Dangerous {
		t.Error("WriteProperty delegation not flagged dangerous")
	}
	if !fake.disconnected {
		t.Error("session was not released")
	}
}
