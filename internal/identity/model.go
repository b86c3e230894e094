package identity

import "time"

// RoleUser is the default role assigned to every account at creation.
const RoleUser = "user"

// User is the identity record for a registered member. Email, Phone and
// ICNumber are each unique across the live user set; the confirmation flags
// start false and only ever flip to true.
type User struct {
	ID             string
	Username       string
	Email          string
	Phone          string
	ICNumber       string
	Role           string
	EmailConfirmed bool
	PhoneConfirmed bool
	EmailOTP       string
	PhoneOTP       string
	EmailOTPExpiry time.Time
	PhoneOTPExpiry time.Time
	PINHash        []byte
	CreatedAt      time.Time
}

// HasPIN reports whether a PIN credential has been set for the user.
func (u User) HasPIN() bool {
	return len(u.PINHash) > 0
}
