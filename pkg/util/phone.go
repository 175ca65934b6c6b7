package util

import "strings"

// CleanPhoneNumber strips everything from a contact identifier except digits
// and a leading plus sign, so "+33 6 00-00-00-00" becomes "+33600000000".
// Returns "" when nothing usable remains.
func CleanPhoneNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	hasPlus := strings.HasPrefix(trimmed, "+")

	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	if hasPlus {
		return "+" + b.String()
	}
	return b.String()
}
