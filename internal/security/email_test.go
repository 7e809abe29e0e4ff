package security

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		name  string
		email string
		want  error
	}{
		{name: "valid", email: "maria@business.ph", want: nil},
		{name: "valid uppercase domain", email: "maria@Business.PH", want: nil},
		{name: "empty", email: "", want: ErrEmailRequired},
		{name: "whitespace only", email: "   ", want: ErrEmailRequired},
		{name: "missing at", email: "maria.business.ph", want: ErrEmailFormat},
		{name: "missing tld", email: "maria@business", want: ErrEmailFormat},
		{name: "spaces inside", email: "maria x@business.ph", want: ErrEmailFormat},
		{name: "disposable", email: "drop@mailinator.com", want: ErrEmailDisposable},
		{name: "disposable mixed case", email: "drop@MAILINATOR.com", want: ErrEmailDisposable},
		{name: "disposable yopmail", email: "a@yopmail.fr", want: ErrEmailDisposable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEmail(tc.email)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ValidateEmail(%q) = %v, want %v", tc.email, err, tc.want)
			}
		})
	}
}

func TestIsDisposable(t *testing.T) {
	if !IsDisposable("x@tempmail.com") {
		t.Fatal("expected tempmail.com to be flagged")
	}
	if IsDisposable("x@gmail.com") {
		t.Fatal("did not expect gmail.com to be flagged")
	}
	if IsDisposable("no-at-sign") {
		t.Fatal("malformed input should not be flagged")
	}
	if IsDisposable("trailing@") {
		t.Fatal("empty domain should not be flagged")
	}
}
