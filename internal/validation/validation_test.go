package validation

import (
	"testing"
)

func TestValidateFieldRequiredShortCircuits(t *testing.T) {
	result := ValidateField("   ", []Rule{
		MinLength(5, "too short"),
		Required("value is required"),
		Pattern(EmailPattern, "bad format"),
	})
	if result.IsValid {
		t.Fatalf("blank required field must fail")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "value is required" {
		t.Fatalf("required must short-circuit to one message, got %v", result.Errors)
	}
}

func TestValidateFieldOptionalBlankPasses(t *testing.T) {
	result := ValidateField("", []Rule{
		MinLength(5, "too short"),
		Pattern(EmailPattern, "bad format"),
	})
	if !result.IsValid {
		t.Fatalf("blank optional field must pass, got %v", result.Errors)
	}
}

func TestValidateFieldAccumulatesFailures(t *testing.T) {
	result := ValidateField("ab", []Rule{
		Required("value is required"),
		MinLength(5, "too short"),
		Pattern(EmailPattern, "bad format"),
	})
	if result.IsValid {
		t.Fatalf("invalid value must fail")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("want 2 accumulated errors got %v", result.Errors)
	}
	if result.Errors[0] != "too short" || result.Errors[1] != "bad format" {
		t.Fatalf("errors out of rule order: %v", result.Errors)
	}
}

func TestValidateFormCollectsPerFieldResults(t *testing.T) {
	schema := Schema{
		{Name: "name", Rules: []Rule{Required("name is required"), Pattern(NamePattern, "bad name")}},
		{Name: "email", Rules: []Rule{Required("email is required"), Pattern(EmailPattern, "bad email")}},
		{Name: "message", Rules: []Rule{Required("message is required"), MinLength(10, "message too short")}},
	}
	result := ValidateForm(map[string]interface{}{
		"name":    "Alice Chen",
		"email":   "not-an-email",
		"message": "short",
	}, schema)

	if result.IsValid() {
		t.Fatalf("form with bad email and short message must fail")
	}
	if !result.Field("name").IsValid {
		t.Fatalf("name should pass: %v", result.Field("name").Errors)
	}

	fieldErrs := result.FieldErrors()
	if len(fieldErrs) != 2 {
		t.Fatalf("failing fields want 2 got %v", fieldErrs)
	}
	if _, ok := fieldErrs["name"]; ok {
		t.Fatalf("passing field must be absent from FieldErrors")
	}

	all := result.AllErrors()
	if len(all) != 2 || all[0] != "bad email" || all[1] != "message too short" {
		t.Fatalf("AllErrors must follow schema order, got %v", all)
	}
}

func TestTrackingNumberPattern(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"SW12345678", true},
		{"ABCDEFGH1234567890AB", true},
		{"SHORT1", false},
		{"sw12345678", false},
		{"SW1234-5678", false},
		{"ABCDEFGH1234567890ABC", false},
	}
	for _, tc := range cases {
		if got := TrackingNumberPattern.MatchString(tc.value); got != tc.want {
			t.Fatalf("pattern %q want %v got %v", tc.value, tc.want, got)
		}
	}
}
