package directory

import (
	"fmt"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// LDAP_SERVER_SD_FLAGS_OID lets the caller pick which parts of the
// nTSecurityDescriptor the server returns. Asking for everything but the
// SACL allows non-admin binds to read the attribute at all.
const sdFlagsOID = "1.2.840.113556.1.4.801"

const (
	sdFlagOwner = 0x01
	sdFlagGroup = 0x02
	sdFlagDACL  = 0x04
)

// SDFlagsControl requests a security descriptor with only the listed
// parts. The control value is a BER sequence holding one integer.
func SDFlagsControl(flags int64) *ControlInteger {
	return &ControlInteger{
		ControlType:  sdFlagsOID,
		Criticality:  true,
		ControlValue: flags,
	}
}

type ControlInteger struct {
	ControlType  string
	Criticality  bool
	ControlValue int64
}

// GetControlType returns the OID
func (c *ControlInteger) GetControlType() string {
	return c.ControlType
}

// Encode returns the ber packet representation
func (c *ControlInteger) Encode() *ber.Packet {
	packet := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Control")
	packet.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, c.ControlType, "Control Type ("+c.ControlType+")"))
	if c.Criticality {
		packet.AppendChild(ber.NewBoolean(ber.ClassUniversal, ber.TypePrimitive, ber.TagBoolean, c.Criticality, "Criticality"))
	}

	p2 := ber.Encode(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, nil, "Control Value")
	value := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "Control Value Sequence")
	value.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, c.ControlValue, "Integer"))
	p2.AppendChild(value)
	packet.AppendChild(p2)

	return packet
}

// String returns a human-readable description
func (c *ControlInteger) String() string {
	return fmt.Sprintf("Control Type: %v  Criticality: %t  Control Value: %v", c.ControlType, c.Criticality, c.ControlValue)
}
