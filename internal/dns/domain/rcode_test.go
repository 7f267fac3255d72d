package domain

import "testing"

func TestRCode_IsValid(t *testing.T) {
	cases := []struct {
		value RCode
		want  bool
	}{
		{0, true}, {1, true}, {2, true}, {3, true}, {4, true}, {5, true},
		{6, true}, {7, true}, {8, true}, {9, true}, {10, true}, {16, true},
		{11, false}, {15, false}, {17, false}, {4095, false},
	}
	for _, tc := range cases {
		if got := tc.value.IsValid(); got != tc.want {
			t.Errorf("IsValid(%d) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRCode_String(t *testing.T) {
	cases := []struct {
		r    RCode
		want string
	}{
		{0, "NOERROR"}, {1, "FORMERR"}, {2, "SERVFAIL"}, {3, "NXDOMAIN"},
		{4, "NOTIMP"}, {5, "REFUSED"}, {9, "NOTAUTH"}, {10, "NOTZONE"},
		{16, "BADVERS"}, {11, "RCODE11"}, {4095, "RCODE4095"},
	}
	for _, tc := range cases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestRCode_ExtendedSplit(t *testing.T) {
	cases := []struct {
		r        RCode
		header   uint8
		extended uint8
		isExt    bool
	}{
		{0, 0, 0, false},
		{3, 3, 0, false},
		{15, 15, 0, false},
		{16, 0, 1, true},
		{0x123, 3, 0x12, true},
	}
	for _, tc := range cases {
		if got := tc.r.Header(); got != tc.header {
			t.Errorf("Header(%d) = %d, want %d", tc.r, got, tc.header)
		}
		if got := tc.r.Extended(); got != tc.extended {
			t.Errorf("Extended(%d) = %d, want %d", tc.r, got, tc.extended)
		}
		if got := tc.r.IsExtended(); got != tc.isExt {
			t.Errorf("IsExtended(%d) = %v, want %v", tc.r, got, tc.isExt)
		}
	}
}

func TestRCodeFromString(t *testing.T) {
	cases := []struct {
		input string
		want  RCode
	}{
		{"NOERROR", 0}, {"FORMERR", 1}, {"NXDOMAIN", 3}, {"BADVERS", 16},
		{"", 0}, {"bogus", 0},
	}
	for _, tc := range cases {
		if got := RCodeFromString(tc.input); got != tc.want {
			t.Errorf("RCodeFromString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
