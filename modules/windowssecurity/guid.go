package windowssecurity

import (
	"errors"

	"github.com/chrisdfennell/ad-tools/modules/util"
	"github.com/gofrs/uuid"
)

var ErrorInvalidGUIDLength = errors.New("GUID blob must be exactly 16 bytes")

// ParseGUID decodes the 16 byte mixed endian wire form of a GUID
// (data1:u32 LE, data2:u16 LE, data3:u16 LE, data4: 8 raw bytes) into a
// uuid that renders in canonical string form.
func ParseGUID(data []byte) (uuid.UUID, error) {
	if len(data) != 16 {
		return uuid.Nil, ErrorInvalidGUIDLength
	}
	u, err := uuid.FromBytes(data)
	if err != nil {
		return uuid.Nil, err
	}
	return util.SwapUUIDEndianess(u), nil
}

// GUIDToBytes is the inverse of ParseGUID.
func GUIDToBytes(u uuid.UUID) []byte {
	return util.SwapUUIDEndianess(u).Bytes()
}
