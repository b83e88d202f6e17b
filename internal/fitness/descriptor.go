package fitness

import (
	"strings"
)

// LeadingInt parses the leading integer out of a free-form descriptor,
// e.g. "8-12" -> 8, "20kg" -> 20, "Bodyweight" -> 0.
// Best effort only, the result is used for form defaults.
func LeadingInt(descriptor string) int {
	s := strings.TrimLeft(descriptor, " \t")
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		// descriptors are small numbers, anything this big is noise
		if n > 1_000_000 {
			return 0
		}
	}
	return n
}
