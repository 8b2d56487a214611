package record

import "strings"

// NormalizeKey returns the comparison key for an identifier or title:
// surrounding whitespace trimmed, trailing periods stripped, lowercased.
// NormalizeKey(NormalizeKey(s)) == NormalizeKey(s) for all s.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, ".") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "."))
	}
	return strings.ToLower(s)
}

// Key returns the normalized key of an optional field and whether it is
// usable for matching. Absent fields and fields that normalize to the empty
// string are not.
func Key(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	k := NormalizeKey(*s)
	return k, k != ""
}
