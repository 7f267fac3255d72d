package domain

import "fmt"

// RRClass represents a DNS class (usually IN for Internet).
type RRClass uint16

// DNS Resource Record Class constants
const (
	RRClassIN   RRClass = 1   // IN - Internet
	RRClassCH   RRClass = 3   // CH - Chaos
	RRClassHS   RRClass = 4   // HS - Hesiod
	RRClassNONE RRClass = 254 // NONE - No class
	RRClassANY  RRClass = 255 // ANY - Any class (query only)
)

var rrClassNames = map[RRClass]string{
	RRClassIN:   "IN",
	RRClassCH:   "CH",
	RRClassHS:   "HS",
	RRClassNONE: "NONE",
	RRClassANY:  "ANY",
}

var rrClassCodes = func() map[string]RRClass {
	m := make(map[string]RRClass, len(rrClassNames))
	for code, name := range rrClassNames {
		m[name] = code
	}
	return m
}()

// IsValid returns true if the RRClass is one of the registered classes.
func (c RRClass) IsValid() bool {
	_, ok := rrClassNames[c]
	return ok
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	if name, ok := rrClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}

// RRClassFromString converts a class label to its numeric code.
// Unknown labels yield zero.
func RRClassFromString(s string) RRClass {
	return rrClassCodes[s]
}
