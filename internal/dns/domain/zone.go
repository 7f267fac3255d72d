package domain

import "fmt"

// Zone pairs a zone apex name with its SOA record. The server is
// authoritative for every name at or below the apex.
type Zone struct {
	Name string
	SOA  ResourceRecord
}

// NewZone constructs a Zone and validates that the record is an IN SOA
// owned by the apex.
func NewZone(name string, soa ResourceRecord) (Zone, error) {
	if soa.Type != RRTypeSOA {
		return Zone{}, fmt.Errorf("zone %q: record type is %s, want SOA", name, soa.Type)
	}
	if soa.Class != RRClassIN {
		return Zone{}, fmt.Errorf("zone %q: record class is %s, want IN", name, soa.Class)
	}
	if soa.Name != name {
		return Zone{}, fmt.Errorf("zone %q: SOA owner is %q", name, soa.Name)
	}
	if _, ok := soa.Data.(SOAData); !ok {
		return Zone{}, fmt.Errorf("zone %q: SOA payload missing", name)
	}
	return Zone{Name: name, SOA: soa}, nil
}

// SOAData returns the zone's SOA payload.
func (z Zone) SOAData() SOAData {
	data, _ := z.SOA.Data.(SOAData)
	return data
}
