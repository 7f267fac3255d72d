package server

import (
	"fmt"
	"strings"

	"github.com/cepharum/dnsd/internal/dns/common/utils"
	"github.com/cepharum/dnsd/internal/dns/domain"
)

// Zone registers an SOA record for the zone rooted at name. The serial
// accepts "now" for the current UNIX seconds; the four timing values
// accept plain seconds or span strings like "2h" or "30m". Registration
// failures are reported on the event stream so the call stays fluent.
func (s *Server) Zone(name, mname, rname, serial, refresh, retry, expire, minimum string) *Server {
	zone, err := s.buildZone(name, mname, rname, serial, refresh, retry, expire, minimum)
	if err == nil {
		err = s.RegisterZone(zone)
	}
	if err != nil {
		s.logger.Error(map[string]any{"zone": name, "error": err.Error()}, "Zone registration failed")
		s.emit(Event{Kind: EventError, Err: err})
	}
	return s
}

// buildZone resolves the textual SOA parameters into a Zone.
func (s *Server) buildZone(name, mname, rname, serial, refresh, retry, expire, minimum string) (domain.Zone, error) {
	name = utils.CanonicalDNSName(name)

	serialValue, ok := utils.Serial(serial, s.clock.Now())
	if !ok {
		return domain.Zone{}, fmt.Errorf("zone %q: invalid serial %q", name, serial)
	}

	timings := [4]uint32{}
	for i, value := range []string{refresh, retry, expire, minimum} {
		seconds, ok := utils.Seconds(value)
		if !ok {
			return domain.Zone{}, fmt.Errorf("zone %q: invalid duration %q", name, value)
		}
		timings[i] = seconds
	}

	soa := domain.ResourceRecord{
		Name:  name,
		Type:  domain.RRTypeSOA,
		Class: domain.RRClassIN,
		Data: domain.SOAData{
			MName:   utils.CanonicalDNSName(mname),
			RName:   strings.TrimSpace(rname),
			Serial:  serialValue,
			Refresh: timings[0],
			Retry:   timings[1],
			Expire:  timings[2],
			Minimum: timings[3],
		},
	}
	return domain.NewZone(name, soa)
}

// RegisterZone adds a pre-built zone to the registry. The apex feeds the
// bloom prefilter and invalidates the lookup memoization, since a new
// zone may cover names previously resolved as unmatched.
func (s *Server) RegisterZone(zone domain.Zone) error {
	if zone.Name == "" {
		return fmt.Errorf("zone apex must not be empty")
	}
	s.mu.Lock()
	s.zones[zone.Name] = zone
	s.filter.AddString(zone.Name)
	s.mu.Unlock()
	s.lookups.Purge()
	return nil
}

// Zones returns the registered zones keyed by apex.
func (s *Server) Zones() map[string]domain.Zone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	zones := make(map[string]domain.Zone, len(s.zones))
	for apex, zone := range s.zones {
		zones[apex] = zone
	}
	return zones
}

// findZoneForName walks from name toward the root, one label at a time,
// and returns the first registered zone covering it. The bloom filter
// rules out most non-matching suffixes without touching the map, and
// resolved lookups are memoized per qname.
func (s *Server) findZoneForName(name string) (domain.Zone, bool) {
	name = utils.CanonicalDNSName(name)

	if apex, ok := s.lookups.Get(name); ok {
		if apex == "" {
			return domain.Zone{}, false
		}
		s.mu.RLock()
		zone, ok := s.zones[apex]
		s.mu.RUnlock()
		return zone, ok
	}

	candidate := name
	for {
		s.mu.RLock()
		maybe := s.filter.TestString(candidate)
		zone, ok := domain.Zone{}, false
		if maybe {
			zone, ok = s.zones[candidate]
		}
		s.mu.RUnlock()
		if ok {
			s.lookups.Add(name, candidate)
			return zone, true
		}
		dot := strings.IndexByte(candidate, '.')
		if dot < 0 {
			break
		}
		candidate = candidate[dot+1:]
	}

	s.lookups.Add(name, "")
	return domain.Zone{}, false
}
