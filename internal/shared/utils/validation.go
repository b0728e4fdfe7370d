package utils

import "strings"

// IsValidEmail performs a shape check on an email address: it must contain
// a single "@" with a non-empty local part and a domain containing a dot.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t\n")
}
