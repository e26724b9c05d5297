package util

import (
	"strings"

	"github.com/gofrs/uuid"
)

// SwapUUIDEndianess converts between the on-the-wire mixed endian GUID
// layout (data1/data2/data3 little endian, data4 raw) and the big endian
// layout gofrs/uuid renders. It is its own inverse.
func SwapUUIDEndianess(u uuid.UUID) uuid.UUID {
	var r uuid.UUID
	r[0], r[1], r[2], r[3] = u[3], u[2], u[1], u[0]
	r[4], r[5] = u[5], u[4]
	r[6], r[7] = u[7], u[6]
	copy(r[8:], u[8:])
	return r
}

func ParentDistinguishedName(dn string) string {
	for {
		firstcomma := strings.Index(dn, ",")
		if firstcomma == -1 {
			return "" // At the top
		}
		if firstcomma > 0 {
			if dn[firstcomma-1] == '\\' {
				// False alarm, strip it and go on
				dn = dn[firstcomma+1:]
				continue
			}
		}
		dn = dn[firstcomma+1:]
		break
	}
	return dn
}

func DomainSuffixToDomainContext(domain string) string {
	parts := strings.Split(domain, ".")
	return strings.ToLower("dc=" + strings.Join(parts, ",dc="))
}

func Default(values ...string) string {
	for _, value := range values {
		if len(value) != 0 {
			return value
		}
	}
	return ""
}
