package recordfile

import (
	"fmt"

	"github.com/nctl-dev/nctl/namecheap"
)

// Diff is the change set between the live records and a desired file.
// Unlike host record identity, diff identity includes TTL and priority,
// so a TTL change shows up as a remove-and-add pair; that is also how
// the registrar applies it, since every submit replaces the full set.
type Diff struct {
	Add    []namecheap.Record
	Remove []namecheap.Record
	Keep   []namecheap.Record
}

// Empty reports whether applying the diff would change anything.
func (d Diff) Empty() bool {
	return len(d.Add) == 0 && len(d.Remove) == 0
}

func diffKey(r namecheap.Record) string {
	ttl := r.TTL
	if ttl == 0 {
		ttl = namecheap.DefaultTTL
	}
	return fmt.Sprintf("%s\x00%d\x00%d", r.Key(), ttl, r.MXPref)
}

// Compare computes the diff from current (live) to desired (file).
func Compare(current, desired []namecheap.Record) Diff {
	var d Diff

	want := make(map[string]bool, len(desired))
	for _, r := range desired {
		want[diffKey(r)] = true
	}
	have := make(map[string]bool, len(current))
	for _, r := range current {
		have[diffKey(r)] = true
	}

	for _, r := range current {
		if want[diffKey(r)] {
			d.Keep = append(d.Keep, r)
		} else {
			d.Remove = append(d.Remove, r)
		}
	}
	for _, r := range desired {
		if !have[diffKey(r)] {
			d.Add = append(d.Add, r)
		}
	}
	return d
}
