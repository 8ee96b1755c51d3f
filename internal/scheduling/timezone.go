package scheduling

import (
	"errors"
	"strings"
	"time"
)

// StateZone describes the canonical timezone of one US state jurisdiction.
// Offsets are whole hours relative to UTC. States that span multiple zones
// are mapped to the zone of their most populous region.
type StateZone struct {
	Zone        string // IANA identifier
	StdOffset   int    // offset outside DST
	DSTOffset   int    // offset during DST; equals StdOffset where DST is not observed
	ObservesDST bool
}

var ErrUnknownJurisdiction = errors.New("unknown jurisdiction code")

var stateZones = map[string]StateZone{
	"AL": {"America/Chicago", -6, -5, true},
	"AK": {"America/Anchorage", -9, -8, true},
	"AZ": {"America/Phoenix", -7, -7, false},
	"AR": {"America/Chicago", -6, -5, true},
	"CA": {"America/Los_Angeles", -8, -7, true},
	"CO": {"America/Denver", -7, -6, true},
	"CT": {"America/New_York", -5, -4, true},
	"DE": {"America/New_York", -5, -4, true},
	"FL": {"America/New_York", -5, -4, true},
	"GA": {"America/New_York", -5, -4, true},
	"HI": {"Pacific/Honolulu", -10, -10, false},
	"ID": {"America/Denver", -7, -6, true},
	"IL": {"America/Chicago", -6, -5, true},
	"IN": {"America/Indiana/Indianapolis", -5, -4, true},
	"IA": {"America/Chicago", -6, -5, true},
	"KS": {"America/Chicago", -6, -5, true},
	"KY": {"America/New_York", -5, -4, true},
	"LA": {"America/Chicago", -6, -5, true},
	"ME": {"America/New_York", -5, -4, true},
	"MD": {"America/New_York", -5, -4, true},
	"MA": {"America/New_York", -5, -4, true},
	"MI": {"America/Detroit", -5, -4, true},
	"MN": {"America/Chicago", -6, -5, true},
	"MS": {"America/Chicago", -6, -5, true},
	"MO": {"America/Chicago", -6, -5, true},
	"MT": {"America/Denver", -7, -6, true},
	"NE": {"America/Chicago", -6, -5, true},
	"NV": {"America/Los_Angeles", -8, -7, true},
	"NH": {"America/New_York", -5, -4, true},
	"NJ": {"America/New_York", -5, -4, true},
	"NM": {"America/Denver", -7, -6, true},
	"NY": {"America/New_York", -5, -4, true},
	"NC": {"America/New_York", -5, -4, true},
	"ND": {"America/Chicago", -6, -5, true},
	"OH": {"America/New_York", -5, -4, true},
	"OK": {"America/Chicago", -6, -5, true},
	"OR": {"America/Los_Angeles", -8, -7, true},
	"PA": {"America/New_York", -5, -4, true},
	"RI": {"America/New_York", -5, -4, true},
	"SC": {"America/New_York", -5, -4, true},
	"SD": {"America/Chicago", -6, -5, true},
	"TN": {"America/Chicago", -6, -5, true},
	"TX": {"America/Chicago", -6, -5, true},
	"UT": {"America/Denver", -7, -6, true},
	"VT": {"America/New_York", -5, -4, true},
	"VA": {"America/New_York", -5, -4, true},
	"WA": {"America/Los_Angeles", -8, -7, true},
	"WV": {"America/New_York", -5, -4, true},
	"WI": {"America/Chicago", -6, -5, true},
	"WY": {"America/Denver", -7, -6, true},
	"DC": {"America/New_York", -5, -4, true},
}

// TimezoneResolver maps a business's jurisdiction code to a canonical
// timezone. The table is immutable and injected at construction; resolution
// is a pure lookup.
type TimezoneResolver struct {
	zones       map[string]StateZone
	defaultZone string
}

func NewTimezoneResolver(defaultZone string) *TimezoneResolver {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	return &TimezoneResolver{
		zones:       stateZones,
		defaultZone: defaultZone,
	}
}

func (r *TimezoneResolver) Resolve(state string) (StateZone, error) {
	zone, ok := r.zones[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return StateZone{}, ErrUnknownJurisdiction
	}
	return zone, nil
}

// DefaultLocation is the fallback for unknown jurisdictions. A misconfigured
// business must never be blocked from scheduling by a failed lookup.
func (r *TimezoneResolver) DefaultLocation() *time.Location {
	if loc, err := time.LoadLocation(r.defaultZone); err == nil {
		return loc
	}
	return time.UTC
}

// Location resolves the state to a loaded *time.Location, degrading to the
// default location when the state is unknown or missing from the zone
// database.
func (r *TimezoneResolver) Location(state string) *time.Location {
	zone, err := r.Resolve(state)
	if err != nil {
		return r.DefaultLocation()
	}
	loc, err := time.LoadLocation(zone.Zone)
	if err != nil {
		return r.DefaultLocation()
	}
	return loc
}

// StateCodes lists every jurisdiction in the table.
func (r *TimezoneResolver) StateCodes() []string {
	codes := make([]string, 0, len(r.zones))
	for code := range r.zones {
		codes = append(codes, code)
	}
	return codes
}

// InDST reports whether daylight saving is in effect at t in loc. The offset
// at t is compared against the offsets observed in January and July of the
// same year; standard time is whichever of the two is smaller. Zones with
// identical offsets in both months never observe DST.
func InDST(loc *time.Location, t time.Time) bool {
	_, janOffset := time.Date(t.Year(), time.January, 1, 12, 0, 0, 0, loc).Zone()
	_, julOffset := time.Date(t.Year(), time.July, 1, 12, 0, 0, 0, loc).Zone()
	if janOffset == julOffset {
		return false
	}

	stdOffset := janOffset
	if julOffset < stdOffset {
		stdOffset = julOffset
	}

	_, offset := t.In(loc).Zone()
	return offset != stdOffset
}

// EffectiveOffset returns the UTC offset in seconds at t in loc.
func EffectiveOffset(loc *time.Location, t time.Time) int {
	_, offset := t.In(loc).Zone()
	return offset
}
