package zonestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

func testZone(t *testing.T, apex string, serial uint32) domain.Zone {
	t.Helper()
	zone, err := domain.NewZone(apex, domain.ResourceRecord{
		Name:  apex,
		Type:  domain.RRTypeSOA,
		Class: domain.RRClassIN,
		Data: domain.SOAData{
			MName:   "ns1." + apex,
			RName:   "hostmaster@" + apex,
			Serial:  serial,
			Refresh: 7200,
			Retry:   1800,
			Expire:  1209600,
			Minimum: 600,
		},
	})
	require.NoError(t, err)
	return zone
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "zones.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_PutAndAll(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Put(testZone(t, "example.com", 1)))
	require.NoError(t, store.Put(testZone(t, "example.org", 2)))

	zones, err := store.All()
	require.NoError(t, err)
	require.Len(t, zones, 2)

	byApex := map[string]domain.Zone{}
	for _, zone := range zones {
		byApex[zone.Name] = zone
	}
	soa := byApex["example.com"].SOAData()
	assert.Equal(t, "ns1.example.com", soa.MName)
	assert.Equal(t, "hostmaster@example.com", soa.RName)
	assert.Equal(t, uint32(1), soa.Serial)
	assert.Equal(t, uint32(600), soa.Minimum)
	assert.Equal(t, uint32(2), byApex["example.org"].SOAData().Serial)
}

func TestStore_PutReplaces(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Put(testZone(t, "example.com", 1)))
	require.NoError(t, store.Put(testZone(t, "example.com", 9)))

	zones, err := store.All()
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, uint32(9), zones[0].SOAData().Serial)
}

func TestStore_Delete(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Put(testZone(t, "example.com", 1)))
	require.NoError(t, store.Delete("example.com"))
	require.NoError(t, store.Delete("never-there.example"))

	zones, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(testZone(t, "example.com", 5)))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	zones, err := store.All()
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "example.com", zones[0].Name)
	assert.Equal(t, uint32(5), zones[0].SOAData().Serial)
}
