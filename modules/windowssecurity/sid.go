package windowssecurity

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gsync "github.com/SaveTheRbtz/generic-sync-map-go"
)

var (
	ErrorOnlySIDVersion1Supported = errors.New("only SID version 1 supported")
	ErrorTruncatedSID             = errors.New("not enough data for SID")
)

// BlankSID is the documented placeholder for a SID that could not be decoded.
// It renders as "nobody", which is visually recognizable as unresolved.
const BlankSID = "S-1-0-0"

type SID string

// Windows representation
// 0 = revision (always 1)
// 1 = subauthority count
// 2-7 = authority
// 8-11+ = chunks of 4 with subauthorities

// Our representation
// 0-5 = authority
// 6-9+ = chunks of 4 with subauthorities

// Maximum structurally valid subauthority count. Descriptors found in the
// wild sometimes claim more; we decode what fits and stop there.
const MaxSubAuthorities = 15

var sidDeduplicator gsync.MapOf[SID, SID]

func BytesToSID(data []byte) (SID, []byte, error) {
	if len(data) < 8 {
		return "", data, ErrorTruncatedSID
	}
	if data[0] != 0x01 {
		if len(data) > 32 {
			data = data[:32]
		}
		return "", data, fmt.Errorf("SID revision must be 1 (dump %x ...)", data)
	}
	subauthoritycount := int(data[1])
	if subauthoritycount > MaxSubAuthorities {
		subauthoritycount = MaxSubAuthorities
	}

	sidend := 8 + 4*subauthoritycount
	if sidend > len(data) {
		return "", data, ErrorTruncatedSID
	}

	// two step lookup to avoid unnecessary allocations
	if cached, found := sidDeduplicator.Load(SID(string(data[2:sidend]))); found {
		return cached, data[sidend:], nil
	}
	// not found, create new and try again
	lookup := SID(string(data[2:sidend]))
	cached, _ := sidDeduplicator.LoadOrStore(lookup, lookup)
	return cached, data[sidend:], nil
}

func ParseStringSID(input string) (SID, error) {
	if len(input) < 5 {
		return "", errors.New("SID string is too short to be a SID")
	}
	subauthoritycount := strings.Count(input, "-") - 2
	if subauthoritycount < 0 {
		return "", errors.New("less than one subauthority found")
	}
	if input[0] != 'S' {
		return "", errors.New("SID must start with S")
	}
	var sid = make([]byte, 6+4*subauthoritycount)

	strnums := strings.Split(input, "-")

	version, err := strconv.ParseUint(strnums[1], 10, 8)
	if err != nil {
		return "", err
	}
	if version != 1 {
		return "", ErrorOnlySIDVersion1Supported
	}

	authority, err := strconv.ParseInt(strnums[2], 10, 48)
	if err != nil {
		return "", err
	}
	authslice := make([]byte, 8)
	binary.BigEndian.PutUint64(authslice, uint64(authority)<<16) // dirty tricks
	copy(sid[0:], authslice[0:6])

	for i := 0; i < subauthoritycount; i++ {
		subauthority, err := strconv.ParseUint(strnums[3+i], 10, 32)
		if err != nil {
			return "", err
		}
		binary.LittleEndian.PutUint32(sid[6+4*i:], uint32(subauthority))
	}

	// two step lookup to avoid unnecessary allocations
	if cached, found := sidDeduplicator.Load(SID(sid)); found {
		return cached, nil
	}
	// not found, create new and try again
	lookup := SID(sid)
	cached, _ := sidDeduplicator.LoadOrStore(lookup, lookup)
	return cached, nil
}

func MustParseStringSID(input string) SID {
	sid, err := ParseStringSID(input)
	if err != nil {
		panic(err)
	}
	return sid
}

// Bytes returns the Windows wire representation of the SID.
func (sid SID) Bytes() []byte {
	result := make([]byte, 2+len(sid))
	result[0] = 1
	result[1] = byte(sid.SubAuthorityCount())
	copy(result[2:], sid)
	return result
}

func (sid SID) IsNull() bool {
	return sid == ""
}

func (sid SID) SubAuthorityCount() int {
	if len(sid) < 6 {
		return 0
	}
	return (len(sid) - 6) / 4
}

func (sid SID) String() string {
	if sid == "" {
		return "NULL SID"
	}
	var authority uint64
	for i := 0; i <= 5; i++ {
		authority = authority<<8 | uint64(sid[i])
	}
	s := fmt.Sprintf("S-1-%d", authority)

	// Subauthorities
	for i := 6; i+4 <= len(sid); i += 4 {
		subauthority := binary.LittleEndian.Uint32([]byte(sid[i:]))
		s += fmt.Sprintf("-%d", subauthority)
	}
	return s
}

func (sid SID) MarshalJSON() ([]byte, error) {
	return json.Marshal(sid.String())
}

func (sid *SID) UnmarshalJSON(data []byte) error {
	var sidstring string
	err := json.Unmarshal(data, &sidstring)
	if err != nil {
		return err
	}
	newsid, err := ParseStringSID(sidstring)
	*sid = newsid
	return err
}

func (sid SID) StripRID() SID {
	if len(sid) < 10 {
		return ""
	}
	return sid[:len(sid)-4]
}

func (sid SID) RID() uint32 {
	if len(sid) <= 6 {
		return 0
	}
	l := len(sid) - 4
	return binary.LittleEndian.Uint32([]byte(sid[l:]))
}
