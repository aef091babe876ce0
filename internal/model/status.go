package model

// ValidStatus reports whether s is one of allowed.
func ValidStatus(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
