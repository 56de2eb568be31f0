package domain

import "strings"

const (
	maxHostnameLength = 253
	maxLabelLength    = 63
)

// ValidHostname checks a hostname against RFC 1123: letters, digits, '-' and
// '.', at most 253 characters, and non-empty labels of at most 63 characters
// that neither start nor end with '-'.
func ValidHostname(hostname string) bool {
	if hostname == "" || len(hostname) > maxHostnameLength {
		return false
	}
	for i := 0; i < len(hostname); i++ {
		c := hostname[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '-' && c != '.' {
			return false
		}
	}
	for _, label := range strings.Split(hostname, ".") {
		if label == "" || len(label) > maxLabelLength {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}
