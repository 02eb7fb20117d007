package literal

import (
	"strings"
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'single'`, "single"},
		{`""`, ""},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"quote \" and \\"`, `quote " and \`},
		{`'it\'s'`, "it's"},
		{`"\x41\x62"`, "Ab"},
		{`"\u{48}\u{1F600}"`, "H\U0001F600"},
		{`"nul\0"`, "nul\x00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{`"\q"`, "unknown escape"},
		{`"\x4"`, "incomplete \\x"},
		{`"\xzz"`, "invalid \\x"},
		{`"\u41"`, "expected \\u{"},
		{`"\u{}"`, "invalid unicode"},
		{`"\u{110000}"`, "invalid unicode"},
		{`"abc`, "malformed"},
		{`abc`, "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %q", tt.msg, err.Error())
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"0", 0},
		{"42", 42},
		{"017", 17},
		{"1_000_000", 1000000},
		{"0xff", 255},
		{"0XFF", 255},
		{"0o17", 15},
		{"0b1010", 10},
		{"9223372036854775807", 9223372036854775807},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInt(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseIntErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"9223372036854775808", "out of range"},
		{"0x", "invalid"},
		{"1__0", "invalid"},
		{"10_", "invalid"},
		{"0b102", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseInt(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %q", tt.msg, err.Error())
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1.5", 1.5},
		{"2e3", 2000},
		{"2.5E-1", 0.25},
		{"1_000.5", 1000.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	if _, err := ParseFloat("1e400"); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	inputs := []string{"", "plain", "line\nbreak", `back\slash`, `"quoted"`, "tab\there", "bell\x07", "héllo", "\xff", "a\x80b\xc3"}
	for _, in := range inputs {
		quoted := Quote(in)
		got, err := ParseString(quoted)
		if err != nil {
			t.Fatalf("Quote(%q) = %s does not parse: %v", in, quoted, err)
		}
		if got != in {
			t.Errorf("round trip of %q produced %q", in, got)
		}
	}
}

func TestQuoteInvalidUTF8(t *testing.T) {
	if got := Quote("\xffok\xfe"); got != `"\xffok\xfe"` {
		t.Errorf("expected %s, got %s", `"\xffok\xfe"`, got)
	}
}
