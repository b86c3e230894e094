package validation

import "regexp"

var (
	// local@domain.tld shape: no whitespace, one @, a dot in the domain part.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// Malaysian mobile number: international prefix (+60, 060 or 0060)
	// followed by 8 to 11 digits. This is the single canonical rule used
	// everywhere a phone number is checked.
	malaysianMobileRe = regexp.MustCompile(`^(?:\+60|060|0060)\d{8,11}$`)
)

// EmailFormat reports whether the address has a plausible mailbox shape.
func EmailFormat(email string) bool {
	return emailRe.MatchString(email)
}

// MalaysianMobile reports whether the number is a valid Malaysian mobile
// number with an international prefix.
func MalaysianMobile(phone string) bool {
	return malaysianMobileRe.MatchString(phone)
}
