package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// labelPattern is the shape of a single valid owner-name label.
var labelPattern = regexp.MustCompile(`^[^.\s]{1,63}$`)

// ResourceRecord represents one entry of a DNS message section.
// Question-section entries carry no TTL and no Data. A zero TTL on a
// non-question record means "unset" and is subject to the server's
// default-TTL rule; a zero Class defaults to IN at response time.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  RData
}

// NewQuestion constructs a question-section record.
func NewQuestion(name string, rrtype RRType, class RRClass) ResourceRecord {
	return ResourceRecord{Name: name, Type: rrtype, Class: class}
}

// IsOPT returns true if the record is an EDNS OPT pseudo record.
func (rr ResourceRecord) IsOPT() bool {
	return rr.Type == RRTypeOPT
}

// EDNS returns the record's EDNS payload, or nil if it is not an OPT record.
func (rr ResourceRecord) EDNS() *EDNS {
	if opt, ok := rr.Data.(OPTData); ok {
		e := opt.EDNS
		return &e
	}
	return nil
}

// ValidateName checks that every label of the record's owner name is
// 1-63 octets with no dots or whitespace inside. The empty name (root)
// is valid; OPT records require it.
func (rr ResourceRecord) ValidateName() error {
	if rr.Name == "" {
		return nil
	}
	for _, label := range strings.Split(rr.Name, ".") {
		if !labelPattern.MatchString(label) {
			return fmt.Errorf("invalid label %q in name %q", label, rr.Name)
		}
	}
	return nil
}
