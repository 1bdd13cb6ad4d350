package logging

import "strings"

// MaskEmail keeps the first letter of the local part and the domain:
// "alice@example.com" becomes "a***@example.com". The email is vault key
// material, so it is only ever logged in this form.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	r := []rune(local)
	return string(r[0]) + "***@" + domain
}
