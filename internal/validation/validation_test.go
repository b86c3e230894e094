package validation

import "testing"

func TestEmailFormat(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"alice.smith@mail.example.org", true},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a b@c.com", false},
		{"a@b .com", false},
		{"", false},
		{"plainaddress", false},
	}
	for _, tc := range cases {
		if got := EmailFormat(tc.email); got != tc.want {
			t.Errorf("EmailFormat(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestMalaysianMobile(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+60123456789", true},
		{"060123456789", true},
		{"0060123456789", true},
		{"+6012345678", true},        // 8 digits after prefix
		{"+6012345678901", true},     // 11 digits after prefix
		{"+601234567", false},        // 7 digits, too short
		{"+60123456789012", false},   // 12 digits, too long
		{"60123456789", false},       // missing prefix marker
		{"+65123456789", false},      // wrong country code
		{"+60 123456789", false},     // embedded whitespace
		{"", false},
	}
	for _, tc := range cases {
		if got := MalaysianMobile(tc.phone); got != tc.want {
			t.Errorf("MalaysianMobile(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}
