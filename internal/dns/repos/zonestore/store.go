// Package zonestore persists zone SOA registrations in a Bolt database
// so the daemon's authority survives restarts.
package zonestore

import (
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/cepharum/dnsd/internal/dns/domain"
)

var bucketZones = []byte("zones")

// Store is a persistent apex -> SOA registry.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) a Bolt database at path and ensures the zone
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketZones)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put stores or replaces one zone keyed by its apex.
func (s *Store) Put(zone domain.Zone) error {
	value := encodeSOA(zone.SOAData())
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).Put([]byte(zone.Name), value)
	})
}

// Delete removes the zone rooted at apex, if present.
func (s *Store) Delete(apex string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).Delete([]byte(apex))
	})
}

// All returns every stored zone.
func (s *Store) All() ([]domain.Zone, error) {
	var zones []domain.Zone
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketZones).ForEach(func(k, v []byte) error {
			data, err := decodeSOA(v)
			if err != nil {
				return fmt.Errorf("zone %q: %w", k, err)
			}
			apex := string(k)
			zone, err := domain.NewZone(apex, domain.ResourceRecord{
				Name:  apex,
				Type:  domain.RRTypeSOA,
				Class: domain.RRClassIN,
				Data:  data,
			})
			if err != nil {
				return err
			}
			zones = append(zones, zone)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// encodeSOA lays out an SOA payload as two length-prefixed names
// followed by the five 32-bit timers.
func encodeSOA(d domain.SOAData) []byte {
	buf := make([]byte, 0, 4+len(d.MName)+len(d.RName)+20)
	buf = appendString(buf, d.MName)
	buf = appendString(buf, d.RName)
	for _, v := range [5]uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum} {
		buf = binary.BigEndian.AppendUint32(buf, v)
	}
	return buf
}

func decodeSOA(b []byte) (domain.SOAData, error) {
	mname, rest, err := readString(b)
	if err != nil {
		return domain.SOAData{}, err
	}
	rname, rest, err := readString(rest)
	if err != nil {
		return domain.SOAData{}, err
	}
	if len(rest) < 20 {
		return domain.SOAData{}, fmt.Errorf("truncated SOA timers")
	}
	var u32 [5]uint32
	for i := range u32 {
		u32[i] = binary.BigEndian.Uint32(rest[i*4 : (i+1)*4])
	}
	return domain.SOAData{
		MName:   mname,
		RName:   rname,
		Serial:  u32[0],
		Refresh: u32[1],
		Retry:   u32[2],
		Expire:  u32[3],
		Minimum: u32[4],
	}, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...)
}

func readString(b []byte) (string, []byte, error) {
	if len(b) < 2 {
		return "", nil, fmt.Errorf("truncated string length")
	}
	n := int(binary.BigEndian.Uint16(b[:2]))
	if len(b) < 2+n {
		return "", nil, fmt.Errorf("truncated string")
	}
	return string(b[2 : 2+n]), b[2+n:], nil
}
