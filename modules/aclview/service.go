package aclview

import (
	"github.com/chrisdfennell/ad-tools/modules/directory"
	"github.com/chrisdfennell/ad-tools/modules/ui"
	"github.com/chrisdfennell/ad-tools/modules/windowssecurity"
	"github.com/pkg/errors"
)

// Session is what the service needs from a bound directory connection.
// *directory.AD satisfies it; tests substitute a fake.
type Session interface {
	FetchSecurityDescriptor(dn string) (directory.Entry, error)
	OrganizationalUnits() ([]directory.Entry, error)
	LookupSID(sid string) (string, bool)
	Disconnect() error
}

// Connector acquires a fresh bound session. Connection failures are fatal
// for the call; retrying is the caller's business.
type Connector func() (Session, error)

type Service struct {
	Connect Connector
}

func NewService(connect Connector) *Service {
	return &Service{Connect: connect}
}

// ACE is one decoded and annotated access control entry.
type ACE struct {
	Type            string   `json:"type"`
	TrusteeSID      string   `json:"sid"`
	TrusteeName     string   `json:"trustee"`
	Rights          []string `json:"rights"`
	AccessMask      uint32   `json:"access_mask"`
	Inherited       bool     `json:"inherited"`
	Dangerous       bool     `json:"dangerous"`
	ObjectTypeGUID  string   `json:"object_type,omitempty"`
	ObjectTypeLabel string   `json:"object_type_label,omitempty"`
}

// ObjectACL is the annotated DACL of one object, entries in wire order.
type ObjectACL struct {
	DN   string `json:"dn"`
	Name string `json:"name"`
	ACEs []ACE  `json:"aces"`
}

// Delegation is a non-inherited ACE found on an organizational unit.
type Delegation struct {
	OUName string `json:"ou_name"`
	OUDN   string `json:"ou_dn"`
	ACE
}

// GetObjectACL reads and decodes the DACL of one object. The directory
// connection is scoped to this call and released on every path.
func (s *Service) GetObjectACL(dn string) (*ObjectACL, error) {
	session, err := s.Connect()
	if err != nil {
		return nil, errors.Wrap(err, "connecting to directory")
	}
	defer session.Disconnect()

	entry, err := session.FetchSecurityDescriptor(dn)
	if err != nil {
		return nil, err
	}

	sd := windowssecurity.ParseSecurityDescriptor(entry.Descriptor)

	resolve := newResolver(session.LookupSID)
	result := ObjectACL{
		DN:   entry.DN,
		Name: entry.Name,
		ACEs: annotate(sd.DACL.Entries, resolve),
	}
	return &result, nil
}

// OUDelegations sweeps all organizational units and reports the ACEs that
// were set directly on them rather than inherited; those are the granted
// delegations.
func (s *Service) OUDelegations() ([]Delegation, error) {
	session, err := s.Connect()
	if err != nil {
		return nil, errors.Wrap(err, "connecting to directory")
	}
	defer session.Disconnect()

	ous, err := session.OrganizationalUnits()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating organizational units")
	}

	resolve := newResolver(session.LookupSID)

	pb := ui.ProgressBar("Decoding OU security descriptors", len(ous))
	defer pb.Finish()

	var delegations []Delegation
	for _, ou := range ous {
		pb.Add(1)
		if len(ou.Descriptor) == 0 {
			ui.Debug().Msgf("OU %v has no readable security descriptor, skipping", ou.DN)
			continue
		}
		sd := windowssecurity.ParseSecurityDescriptor(ou.Descriptor)
		for _, ace := range annotate(sd.DACL.Entries, resolve) {
			if ace.Inherited {
				continue
			}
			delegations = append(delegations, Delegation{
				OUName: ou.Name,
				OUDN:   ou.DN,
				ACE:    ace,
			})
		}
	}
	return delegations, nil
}

// annotate turns parsed ACEs into display records, preserving order.
func annotate(entries []windowssecurity.ACE, resolve *resolver) []ACE {
	result := make([]ACE, 0, len(entries))
	for _, entry := range entries {
		rights := entry.Mask.Rights()
		ace := ACE{
			Type:        entry.TypeName(),
			TrusteeSID:  entry.SID.String(),
			TrusteeName: resolve.Resolve(entry.SID.String()),
			Rights:      rights,
			AccessMask:  uint32(entry.Mask),
			Inherited:   entry.Inherited(),
			Dangerous:   windowssecurity.IsDangerous(rights),
		}
		if entry.HasObjectType() {
			ace.ObjectTypeGUID = entry.ObjectTypeString()
			ace.ObjectTypeLabel = windowssecurity.RightGUIDLabel(ace.ObjectTypeGUID)
		}
		result = append(result, ace)
	}
	return result
}
