package validation

import "testing"

func TestSanitizeInputStripsScriptFragments(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello world  ", "hello world"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"javascript:alert(1)", "alert(1)"},
		{"a onclick=do() b", "a do() b"},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		if got := SanitizeInput(tc.in); got != tc.want {
			t.Fatalf("sanitize %q want %q got %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatTrackingNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"sw-1234 5678", "SW12345678"},
		{"  abc123  ", "ABC123"},
		{"SW12345678", "SW12345678"},
	}
	for _, tc := range cases {
		if got := FormatTrackingNumber(tc.in); got != tc.want {
			t.Fatalf("format %q want %q got %q", tc.in, tc.want, got)
		}
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2065551234", "(206) 555-1234"},
		{"12065551234", "+1 (206) 555-1234"},
		{"206-555-1234", "(206) 555-1234"},
		{"555-1234", "555-1234"},
	}
	for _, tc := range cases {
		if got := FormatPhoneNumber(tc.in); got != tc.want {
			t.Fatalf("format %q want %q got %q", tc.in, tc.want, got)
		}
	}
}
