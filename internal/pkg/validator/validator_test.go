package validator

import (
	"testing"

	"github.com/shopspring/decimal"
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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP-0012", "1001", "ops_7"}
	invalid := []string{"", "-EMP", "EMP 12", "EMP/12"}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsPositive(t *testing.T) {
	one := decimal.NewFromInt(1)
	zero := decimal.Zero
	neg := decimal.NewFromInt(-1)
	if !IsPositive(&one) {
		t.Errorf("IsPositive(1) = false, want true")
	}
	if IsPositive(&zero) || IsPositive(&neg) || IsPositive(nil) {
		t.Errorf("IsPositive accepted a non-positive value")
	}
}

func TestValidatePeriod(t *testing.T) {
	var errs ValidationErrors
	start, end := ValidatePeriod("2024-03-11", "2024-03-25", &errs)
	if len(errs) != 0 {
		t.Fatalf("ValidatePeriod returned errors: %v", errs)
	}
	if start.Day() != 11 || end.Day() != 25 {
		t.Errorf("ValidatePeriod parsed %v..%v", start, end)
	}

	errs = nil
	ValidatePeriod("2024-03-25", "2024-03-11", &errs)
	if len(errs) != 1 || errs[0].Field != "to" {
		t.Errorf("reversed period: got %v", errs)
	}

	errs = nil
	ValidatePeriod("bad", "", &errs)
	if len(errs) != 2 {
		t.Errorf("malformed period: got %v", errs)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "from", Message: "invalid"},
		{Field: "amount", Message: "required"},
	}
	got := errs.Error()
	want := "from: invalid; amount: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "from", Message: "invalid"},
		{Field: "amount", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"from": "invalid", "amount": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestIsCents(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"100", true},
		{"100.5", true},
		{"100.50", true},
		{"100.500", true},
		{"0.004", false},
		{"100.005", false},
	}
	for _, c := range cases {
		got := IsCents(decimal.RequireFromString(c.input))
		if got != c.want {
			t.Errorf("IsCents(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}
