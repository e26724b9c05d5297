package windowssecurity

import (
	"encoding/binary"

	"github.com/chrisdfennell/ad-tools/modules/ui"
	"github.com/gofrs/uuid"
)

type SecurityDescriptorControlFlag uint16

// http://www.selfadsi.org/deep-inside/ad-security-descriptors.htm

const (
	CONTROLFLAG_OWNER_DEFAULTED     SecurityDescriptorControlFlag = 0x0001
	CONTROLFLAG_GROUP_DEFAULTED                                   = 0x0002
	CONTROLFLAG_DACL_PRESENT                                      = 0x0004
	CONTROLFLAG_DACL_DEFAULTED                                    = 0x0008
	CONTROLFLAG_SACL_PRESENT                                      = 0x0010
	CONTROLFLAG_SACL_DEFAULTED                                    = 0x0020
	CONTROLFLAG_DACL_AUTO_INHERITED                               = 0x0400
	CONTROLFLAG_SACL_AUTO_INHERITED                               = 0x0800
	CONTROLFLAG_DACL_PROTECTED                                    = 0x1000
	CONTROLFLAG_SACL_PROTECTED                                    = 0x2000
	CONTROLFLAG_SELF_RELATIVE                                     = 0x8000

	// ACE.Type
	ACETYPE_ACCESS_ALLOWED        = 0x00
	ACETYPE_ACCESS_DENIED         = 0x01
	ACETYPE_ACCESS_ALLOWED_OBJECT = 0x05
	ACETYPE_ACCESS_DENIED_OBJECT  = 0x06

	// ACE.ACEFlags
	ACEFLAG_INHERIT_ACE              = 0x02 // Child objects inherit this ACE
	ACEFLAG_NO_PROPAGATE_INHERIT_ACE = 0x04 // Only the NEXT child inherits this, not further down the line
	ACEFLAG_INHERIT_ONLY_ACE         = 0x08 // Not valid for this object, only for children
	ACEFLAG_INHERITED_ACE            = 0x10 // This ACE was inherited from parent object

	// ACE.Flags - present if this is a ACETYPE_ACCESS_*_OBJECT Type
	OBJECT_TYPE_PRESENT           = 0x01
	INHERITED_OBJECT_TYPE_PRESENT = 0x02
)

// Runaway protection for corrupted DACLs claiming absurd entry counts.
const maxACEsPerACL = 200

var NullGUID = uuid.UUID{}

type SecurityDescriptor struct {
	Owner   SID
	Group   SID
	DACL    ACL
	Control SecurityDescriptorControlFlag

	Revision byte

	// Read from the header but never walked; audit ACEs are out of scope.
	SACLOffset uint32
}

type ACL struct {
	Entries  []ACE
	Revision byte
}

type ACE struct {
	SID                 SID
	Mask                Mask
	Flags               uint32 // object flags, only for object type ACEs
	ObjectType          uuid.UUID
	InheritedObjectType uuid.UUID
	ACEFlags            byte
	Type                byte
}

// Inherited reports whether the entry was inherited from a parent object
// rather than set directly.
func (a ACE) Inherited() bool {
	return a.ACEFlags&ACEFLAG_INHERITED_ACE != 0
}

func (a ACE) TypeName() string {
	switch a.Type {
	case ACETYPE_ACCESS_ALLOWED:
		return "Allow"
	case ACETYPE_ACCESS_DENIED:
		return "Deny"
	case ACETYPE_ACCESS_ALLOWED_OBJECT:
		return "Allow (Object)"
	case ACETYPE_ACCESS_DENIED_OBJECT:
		return "Deny (Object)"
	}
	return ""
}

// HasObjectType reports whether an ObjectType GUID was present on the wire.
// The GUID value itself can legitimately be all zeroes ("All Properties").
func (a ACE) HasObjectType() bool {
	return (a.Type == ACETYPE_ACCESS_ALLOWED_OBJECT || a.Type == ACETYPE_ACCESS_DENIED_OBJECT) &&
		a.Flags&OBJECT_TYPE_PRESENT != 0
}

// ObjectTypeString returns the canonical GUID string, or "" when no
// ObjectType GUID was present.
func (a ACE) ObjectTypeString() string {
	if !a.HasObjectType() {
		return ""
	}
	return a.ObjectType.String()
}

// ParseSecurityDescriptor decodes the self-relative binary form of an NT
// security descriptor. Malformed content degrades to partial results;
// production directories contain truncated and vendor extended descriptors
// that must still render what can be decoded.
func ParseSecurityDescriptor(data []byte) SecurityDescriptor {
	var result SecurityDescriptor
	if len(data) < 20 {
		return result
	}
	result.Revision = data[0]
	result.Control = SecurityDescriptorControlFlag(binary.LittleEndian.Uint16(data[2:4]))

	offsetOwner := binary.LittleEndian.Uint32(data[4:8])
	offsetGroup := binary.LittleEndian.Uint32(data[8:12])
	result.SACLOffset = binary.LittleEndian.Uint32(data[12:16])
	offsetDacl := binary.LittleEndian.Uint32(data[16:20])

	if offsetOwner > 0 && int(offsetOwner) < len(data) {
		result.Owner, _, _ = BytesToSID(data[offsetOwner:])
	}
	if offsetGroup > 0 && int(offsetGroup) < len(data) {
		result.Group, _, _ = BytesToSID(data[offsetGroup:])
	}

	// offsetDacl == 0 is a valid descriptor with no explicit DACL
	if offsetDacl == 0 || int(offsetDacl)+8 > len(data) {
		return result
	}

	// DACL header: revision(1), sbz1(1), size(2), acecount(2), sbz2(2)
	result.DACL.Revision = data[offsetDacl]
	acecount := int(binary.LittleEndian.Uint16(data[offsetDacl+4 : offsetDacl+6]))

	result.DACL.Entries = ParseACEList(data, int(offsetDacl)+8, acecount)
	return result
}

// ParseACEList walks count ACE records starting at pos, preserving wire
// order. Entries AD evaluates by position, so reordering here would lie
// about the access check outcome. Truncated or malformed trailing entries
// end the walk with the entries decoded so far; entries with unsupported
// type values are skipped individually.
func ParseACEList(data []byte, pos int, count int) []ACE {
	var entries []ACE

	if count > maxACEsPerACL {
		ui.Debug().Msgf("ACL claims %v entries, capping at %v", count, maxACEsPerACL)
		count = maxACEsPerACL
	}

	for i := 0; i < count; i++ {
		// ACE header: type(1), flags(1), size(2)
		if pos+4 > len(data) {
			break
		}
		var ace ACE
		ace.Type = data[pos]
		ace.ACEFlags = data[pos+1]
		acesize := int(binary.LittleEndian.Uint16(data[pos+2 : pos+4]))

		if acesize < 4 || pos+acesize > len(data) {
			break
		}

		switch ace.Type {
		case ACETYPE_ACCESS_ALLOWED, ACETYPE_ACCESS_DENIED:
			if pos+8 > len(data) {
				pos += acesize
				continue
			}
			ace.Mask = Mask(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
			ace.SID = sidOrBlank(data[pos+8:])

		case ACETYPE_ACCESS_ALLOWED_OBJECT, ACETYPE_ACCESS_DENIED_OBJECT:
			if pos+12 > len(data) {
				pos += acesize
				continue
			}
			ace.Mask = Mask(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
			ace.Flags = binary.LittleEndian.Uint32(data[pos+8 : pos+12])

			sidoffset := pos + 12
			if ace.Flags&OBJECT_TYPE_PRESENT != 0 {
				if guid, err := ParseGUID(guidSlice(data, sidoffset)); err == nil {
					ace.ObjectType = guid
				} else {
					// Structurally claimed but not there; drop the claim
					// and let the SID offset arithmetic below stay sane.
					ace.Flags &^= OBJECT_TYPE_PRESENT
				}
				if ace.Flags&OBJECT_TYPE_PRESENT != 0 {
					sidoffset += 16
				}
			}
			if ace.Flags&INHERITED_OBJECT_TYPE_PRESENT != 0 {
				if guid, err := ParseGUID(guidSlice(data, sidoffset)); err == nil {
					ace.InheritedObjectType = guid
					sidoffset += 16
				} else {
					ace.Flags &^= INHERITED_OBJECT_TYPE_PRESENT
				}
			}
			ace.SID = sidOrBlank(data[sidoffset:])

		default:
			// Unsupported ACE type (audit, callback, mandatory label...):
			// skip the entry but keep walking by its declared size.
			pos += acesize
			continue
		}

		entries = append(entries, ace)
		pos += acesize
	}

	return entries
}

func guidSlice(data []byte, offset int) []byte {
	if offset+16 > len(data) {
		return nil
	}
	return data[offset : offset+16]
}

func sidOrBlank(data []byte) SID {
	sid, _, err := BytesToSID(data)
	if err != nil {
		// One undecodable trustee must not blank the whole list; the
		// placeholder is recognizable as unresolved.
		return MustParseStringSID(BlankSID)
	}
	return sid
}
