package toolkit

import "strings"

// Slugify converts a counterparty name into a stable graph identifier:
// lowercase, every run of non-alphanumeric characters collapsed to a single
// hyphen, leading and trailing hyphens stripped.
//
//	Slugify("Bridgewater Associates") == "bridgewater-associates"
//	Slugify("D. E. Shaw & Co.") == "d-e-shaw-co"
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}
