package domain

import "testing"

func TestRRClass_IsValid(t *testing.T) {
	cases := []struct {
		value RRClass
		want  bool
	}{
		{1, true}, {3, true}, {4, true}, {254, true}, {255, true},
		{0, false}, {2, false}, {5, false}, {100, false}, {9999, false},
	}
	for _, tc := range cases {
		if got := tc.value.IsValid(); got != tc.want {
			t.Errorf("IsValid(%d) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRRClass_String(t *testing.T) {
	cases := []struct {
		c    RRClass
		want string
	}{
		{1, "IN"}, {3, "CH"}, {4, "HS"}, {254, "NONE"}, {255, "ANY"},
		{0, "CLASS0"}, {2, "CLASS2"}, {9999, "CLASS9999"},
	}
	for _, tc := range cases {
		if got := tc.c.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestRRClassFromString(t *testing.T) {
	cases := []struct {
		input string
		want  RRClass
	}{
		{"IN", 1}, {"CH", 3}, {"HS", 4}, {"NONE", 254}, {"ANY", 255},
		{"", 0}, {"XX", 0},
	}
	for _, tc := range cases {
		if got := RRClassFromString(tc.input); got != tc.want {
			t.Errorf("RRClassFromString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
