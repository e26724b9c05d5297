package directory

import (
	"errors"

	"github.com/chrisdfennell/ad-tools/modules/util"
	ldap "github.com/lkarlslund/ldap/v3"
)

var (
	// The requested object does not exist
	ErrNotFound = errors.New("object not found")
	// The object exists but the nTSecurityDescriptor attribute came back
	// absent or empty; typically the bind account lacks read rights on it
	ErrNoDescriptor = errors.New("cannot read security descriptor")
)

// Entry is one directory object with its raw security descriptor bytes.
type Entry struct {
	DN         string
	Name       string
	Descriptor []byte
}

// FetchSecurityDescriptor reads the nTSecurityDescriptor of exactly one
// object (base scope, no subtree) with the SD flags control so the server
// hands out owner, group and DACL without requiring SACL access.
func (ad *AD) FetchSecurityDescriptor(dn string) (Entry, error) {
	request := ldap.NewSearchRequest(
		dn,
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 0, 0, false,
		"(objectClass=*)",
		[]string{"nTSecurityDescriptor", "cn", "ou", "objectClass"},
		[]ldap.Control{SDFlagsControl(sdFlagOwner | sdFlagGroup | sdFlagDACL)},
	)

	response, err := ad.conn.Search(request)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	if len(response.Entries) == 0 {
		return Entry{}, ErrNotFound
	}

	entry := response.Entries[0]
	result := Entry{
		DN:   entry.DN,
		Name: util.Default(entry.GetAttributeValue("cn"), entry.GetAttributeValue("ou"), dn),
	}

	raw := entry.GetRawAttributeValues("nTSecurityDescriptor")
	if len(raw) == 0 || len(raw[0]) == 0 {
		return result, ErrNoDescriptor
	}
	result.Descriptor = raw[0]
	return result, nil
}

// OrganizationalUnits returns every OU under the base DN with its raw
// security descriptor, for the delegation report.
func (ad *AD) OrganizationalUnits() ([]Entry, error) {
	request := ldap.NewSearchRequest(
		ad.BaseDn(),
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		"(objectClass=organizationalUnit)",
		[]string{"ou", "distinguishedName", "nTSecurityDescriptor"},
		[]ldap.Control{SDFlagsControl(sdFlagOwner | sdFlagGroup | sdFlagDACL)},
	)

	response, err := ad.conn.Search(request)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(response.Entries))
	for _, entry := range response.Entries {
		e := Entry{
			DN:   entry.DN,
			Name: entry.GetAttributeValue("ou"),
		}
		if raw := entry.GetRawAttributeValues("nTSecurityDescriptor"); len(raw) > 0 {
			e.Descriptor = raw[0]
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LookupSID finds the object whose objectSid matches and returns its
// sAMAccountName or common name. Lookup failures are reported as not
// found, never as errors; unresolvable SIDs are routine.
func (ad *AD) LookupSID(sid string) (string, bool) {
	request := ldap.NewSearchRequest(
		ad.BaseDn(),
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		"(objectSid="+ldap.EscapeFilter(sid)+")",
		[]string{"cn", "sAMAccountName"},
		nil,
	)

	// A size limited search can return both an entry and a size limit
	// error; the entry is still usable.
	response, _ := ad.conn.Search(request)
	if response == nil || len(response.Entries) == 0 {
		return "", false
	}

	entry := response.Entries[0]
	name := util.Default(entry.GetAttributeValue("sAMAccountName"), entry.GetAttributeValue("cn"))
	if name == "" {
		return "", false
	}
	return name, true
}
