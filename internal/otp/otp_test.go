package otp

import (
	"strconv"
	"testing"
	"time"
)

func TestGenerateRange(t *testing.T) {
	g := New(time.Hour)
	for i := 0; i < 1000; i++ {
		code := g.Generate()
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q: %v", code, err)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("code %d out of range [1000, 9999]", n)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := NewWithSeed(time.Hour, 42)
	b := NewWithSeed(time.Hour, 42)
	for i := 0; i < 10; i++ {
		if ca, cb := a.Generate(), b.Generate(); ca != cb {
			t.Fatalf("same seed diverged at draw %d: %s vs %s", i, ca, cb)
		}
	}
}

func TestIssueSetsExpiry(t *testing.T) {
	g := NewWithSeed(30*time.Minute, 1)
	before := time.Now().UTC()
	code, expires := g.Issue()
	after := time.Now().UTC()

	if code == "" {
		t.Fatal("empty code")
	}
	if expires.Before(before.Add(30*time.Minute)) || expires.After(after.Add(30*time.Minute)) {
		t.Fatalf("expiry %v not ~30m from now", expires)
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Minute)

	cases := []struct {
		name     string
		stored   string
		expiry   time.Time
		supplied string
		want     Result
	}{
		{"correct within window", "1234", future, "1234", Valid},
		{"wrong code", "1234", future, "9999", Mismatch},
		{"wrong code and expired reports mismatch", "1234", past, "9999", Mismatch},
		{"correct code after expiry", "1234", past, "1234", Expired},
		{"no stored code", "", future, "1234", Mismatch},
		{"expiry boundary is inclusive", "1234", now, "1234", Valid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Validate(tc.stored, tc.expiry, tc.supplied, now); got != tc.want {
				t.Fatalf("Validate = %v, want %v", got, tc.want)
			}
		})
	}
}
