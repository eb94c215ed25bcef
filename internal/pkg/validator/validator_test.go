package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd", "Jane@X.com"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+1 555 123 4567", "0812-3456-7890", "5551234"}
	invalid := []string{"", "abc", "12", "+", "555-CALL-NOW", "1234567890123456789"}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2023/01/01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	if d, ok := ParseOptionalDate(nil); !ok || d != nil {
		t.Errorf("ParseOptionalDate(nil) = %v, %v; want nil, true", d, ok)
	}
	blank := "  "
	if d, ok := ParseOptionalDate(&blank); !ok || d != nil {
		t.Errorf("ParseOptionalDate(blank) = %v, %v; want nil, true", d, ok)
	}
	good := "2026-03-10"
	if d, ok := ParseOptionalDate(&good); !ok || d == nil || d.Day() != 10 {
		t.Errorf("ParseOptionalDate(%q) = %v, %v", good, d, ok)
	}
	bad := "10/03/2026"
	if _, ok := ParseOptionalDate(&bad); ok {
		t.Errorf("ParseOptionalDate(%q) ok, want failure", bad)
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatalf("empty ValidationErrors.Err() = %v, want nil", errs.Err())
	}
	errs.Add("email", "invalid email")
	errs.Add("salary", "must not be negative")
	if errs.Err() == nil {
		t.Fatal("Err() = nil after Add")
	}
	if got, want := errs.Error(), "email: invalid email; salary: must not be negative"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if m := errs.ToMap(); m["salary"] != "must not be negative" {
		t.Errorf("ToMap() = %v", m)
	}
}
