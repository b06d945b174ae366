package models

import "fmt"

// Zone is the canonical geographic unit. Every producer refers to it under a
// different vocabulary: the traffic feed uses ID, bus telemetry uses
// AreaCode, planning uses ServiceZone. Zones are immutable once generated.
type Zone struct {
	ID          string
	AreaCode    string
	ServiceZone string
	Center      Location
}

// ZoneRegistry resolves any of the three vocabularies back to the canonical
// zone. Construction fails unless the mapping is bijective.
type ZoneRegistry struct {
	zones         []Zone
	byID          map[string]int
	byAreaCode    map[string]int
	byServiceZone map[string]int
}

func NewZoneRegistry(zones []Zone) (*ZoneRegistry, error) {
	r := &ZoneRegistry{
		zones:         zones,
		byID:          make(map[string]int, len(zones)),
		byAreaCode:    make(map[string]int, len(zones)),
		byServiceZone: make(map[string]int, len(zones)),
	}
	for i, z := range zones {
		if z.ID == "" || z.AreaCode == "" || z.ServiceZone == "" {
			return nil, fmt.Errorf("%w: zone at index %d is missing an alias", ErrConfiguration, i)
		}
		if _, ok := r.byID[z.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate zone id %s", ErrConfiguration, z.ID)
		}
		if _, ok := r.byAreaCode[z.AreaCode]; ok {
			return nil, fmt.Errorf("%w: duplicate area code %s", ErrConfiguration, z.AreaCode)
		}
		if _, ok := r.byServiceZone[z.ServiceZone]; ok {
			return nil, fmt.Errorf("%w: duplicate service zone %s", ErrConfiguration, z.ServiceZone)
		}
		r.byID[z.ID] = i
		r.byAreaCode[z.AreaCode] = i
		r.byServiceZone[z.ServiceZone] = i
	}
	return r, nil
}

// Zones returns the zones in generation order.
func (r *ZoneRegistry) Zones() []Zone { return r.zones }

func (r *ZoneRegistry) Len() int { return len(r.zones) }

func (r *ZoneRegistry) ByID(id string) (Zone, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Zone{}, false
	}
	return r.zones[i], true
}

func (r *ZoneRegistry) ByAreaCode(code string) (Zone, bool) {
	i, ok := r.byAreaCode[code]
	if !ok {
		return Zone{}, false
	}
	return r.zones[i], true
}

func (r *ZoneRegistry) ByServiceZone(sz string) (Zone, bool) {
	i, ok := r.byServiceZone[sz]
	if !ok {
		return Zone{}, false
	}
	return r.zones[i], true
}
