package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soaRecord(owner string) ResourceRecord {
	return ResourceRecord{
		Name:  owner,
		Type:  RRTypeSOA,
		Class: RRClassIN,
		Data: SOAData{
			MName:   "ns1." + owner,
			RName:   "hostmaster@" + owner,
			Serial:  1,
			Refresh: 7200,
			Retry:   1800,
			Expire:  1209600,
			Minimum: 600,
		},
	}
}

func TestNewZone(t *testing.T) {
	zone, err := NewZone("example.com", soaRecord("example.com"))
	require.NoError(t, err)
	assert.Equal(t, "example.com", zone.Name)
	assert.Equal(t, uint32(600), zone.SOAData().Minimum)
}

func TestNewZone_Invalid(t *testing.T) {
	cases := []struct {
		name string
		soa  ResourceRecord
	}{
		{"wrong type", ResourceRecord{Name: "example.com", Type: RRTypeA, Class: RRClassIN, Data: AData{Address: "192.0.2.1"}}},
		{"wrong class", ResourceRecord{Name: "example.com", Type: RRTypeSOA, Class: RRClassCH, Data: SOAData{}}},
		{"wrong owner", soaRecord("example.org")},
		{"missing payload", ResourceRecord{Name: "example.com", Type: RRTypeSOA, Class: RRClassIN}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewZone("example.com", tc.soa)
			assert.Error(t, err)
		})
	}
}
