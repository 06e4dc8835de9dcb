package numparse

import "testing"

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$2.5M", 2_500_000, true},
		{"1,200", 1200, true},
		{"3B", 3_000_000_000, true},
		{"500k", 500_000, true},
		{"$1,250,000", 1_250_000, true},
		{"  42  ", 42, true},
		{"€10M", 10_000_000, true},
		{"12.5", 12.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"$", 0, false},
		{"M", 0, false},
		{"1.2.3M", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseValue(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseValue(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseValue(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
