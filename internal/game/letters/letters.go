// Package letters picks the round letter. Which letters are playable is
// word-list policy owned elsewhere; this package just draws uniformly
// from the allowed set.
package letters

import (
	"fmt"
	"math/rand"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Picker draws round letters uniformly at random from the alphabet minus
// an exclusion list.
type Picker struct {
	allowed []string
}

// NewPicker builds a picker excluding the given letters. Exclusions are
// case-insensitive; excluding the whole alphabet is an error.
func NewPicker(excluded []string) (*Picker, error) {
	skip := make(map[string]struct{}, len(excluded))
	for _, l := range excluded {
		l = strings.ToUpper(strings.TrimSpace(l))
		if len(l) != 1 || !strings.Contains(alphabet, l) {
			return nil, fmt.Errorf("invalid excluded letter %q", l)
		}
		skip[l] = struct{}{}
	}

	var allowed []string
	for _, r := range alphabet {
		if _, ok := skip[string(r)]; !ok {
			allowed = append(allowed, string(r))
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("no letters left after exclusions")
	}

	return &Picker{allowed: allowed}, nil
}

// Pick returns one allowed uppercase letter.
func (p *Picker) Pick() string {
	return p.allowed[rand.Intn(len(p.allowed))]
}

// Allowed returns the playable letters in alphabetical order.
func (p *Picker) Allowed() []string {
	out := make([]string, len(p.allowed))
	copy(out, p.allowed)
	return out
}
