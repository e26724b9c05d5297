package aclview

import (
	"github.com/chrisdfennell/ad-tools/modules/windowssecurity"
)

// resolver memoizes SID to name resolution for the duration of one
// service call. The cache starts out seeded with the well-known table and
// is discarded when the call returns; nothing is shared across requests.
type resolver struct {
	lookup func(sid string) (string, bool)
	cache  map[string]string
}

func newResolver(lookup func(sid string) (string, bool)) *resolver {
	cache := make(map[string]string, len(windowssecurity.KnownSIDs)*2)
	for sid, name := range windowssecurity.KnownSIDs {
		cache[sid] = name
	}
	return &resolver{lookup: lookup, cache: cache}
}

// Resolve returns a display name for the SID. Resolution failure is not
// an error; deleted principals and foreign domain SIDs simply render as
// the SID string.
func (r *resolver) Resolve(sid string) string {
	if name, found := r.cache[sid]; found {
		return name
	}
	if name, found := r.lookup(sid); found {
		r.cache[sid] = name
		return name
	}
	r.cache[sid] = sid
	return sid
}
