// Package jurisdiction holds per-state reference data consulted during fact
// resolution: the consumer's local timezone, two-party call-recording consent
// states, and statute-of-limitations periods for written contracts.
//
// The tables are reference data, not law interpretation. Counsel owns the
// values; engineering owns keeping lookups fail-closed when a state is
// unknown.
package jurisdiction

import (
	"time"
)

// twoPartyConsentStates require all parties to consent to call recording.
// A two-party state never blocks a contact; it triggers an enhanced on-call
// disclosure warning.
var twoPartyConsentStates = map[string]bool{
	"CA": true, "CT": true, "DE": true, "FL": true, "IL": true,
	"MD": true, "MA": true, "MI": true, "MT": true, "NH": true,
	"OR": true, "PA": true, "VT": true, "WA": true,
}

// stateTimezones maps two-letter state codes to the IANA zone used for the
// calling-hours window. States spanning zones use the zone covering the
// majority of the population; the window check is conservative either way
// because both ends of the default window sit inside the federal safe hours.
var stateTimezones = map[string]string{
	"AL": "America/Chicago", "AK": "America/Anchorage", "AZ": "America/Phoenix",
	"AR": "America/Chicago", "CA": "America/Los_Angeles", "CO": "America/Denver",
	"CT": "America/New_York", "DE": "America/New_York", "DC": "America/New_York",
	"FL": "America/New_York", "GA": "America/New_York", "HI": "Pacific/Honolulu",
	"ID": "America/Boise", "IL": "America/Chicago", "IN": "America/Indiana/Indianapolis",
	"IA": "America/Chicago", "KS": "America/Chicago", "KY": "America/New_York",
	"LA": "America/Chicago", "ME": "America/New_York", "MD": "America/New_York",
	"MA": "America/New_York", "MI": "America/Detroit", "MN": "America/Chicago",
	"MS": "America/Chicago", "MO": "America/Chicago", "MT": "America/Denver",
	"NE": "America/Chicago", "NV": "America/Los_Angeles", "NH": "America/New_York",
	"NJ": "America/New_York", "NM": "America/Denver", "NY": "America/New_York",
	"NC": "America/New_York", "ND": "America/Chicago", "OH": "America/New_York",
	"OK": "America/Chicago", "OR": "America/Los_Angeles", "PA": "America/New_York",
	"RI": "America/New_York", "SC": "America/New_York", "SD": "America/Chicago",
	"TN": "America/Chicago", "TX": "America/Chicago", "UT": "America/Denver",
	"VT": "America/New_York", "VA": "America/New_York", "WA": "America/Los_Angeles",
	"WV": "America/New_York", "WI": "America/Chicago", "WY": "America/Denver",
}

// solYears holds statute-of-limitations periods (years) for written contracts
// in states that diverge from the default.
var solYears = map[string]int{
	"CA": 4, "CO": 3, "DE": 3, "KY": 10, "LA": 10, "MD": 3,
	"MO": 10, "NH": 3, "NY": 3, "NC": 3, "RI": 10, "SC": 3,
	"TX": 4, "VA": 5, "WY": 10,
}

const defaultSOLYears = 6

// IsKnown reports whether the state code appears in the timezone table. The
// resolver treats an unknown jurisdiction as unresolvable rather than
// guessing.
func IsKnown(state string) bool {
	_, ok := stateTimezones[state]
	return ok
}

// Timezone returns the IANA zone name for the state, or "" when unknown so
// the calling-hours rule can fail closed.
func Timezone(state string) string {
	return stateTimezones[state]
}

// RequiresTwoPartyConsent reports whether the state requires all-party
// consent to record a call.
func RequiresTwoPartyConsent(state string) bool {
	return twoPartyConsentStates[state]
}

// SOLExpiry derives the statute-of-limitations expiry from the charge-off
// date. Returns the zero time when the charge-off date is unknown.
func SOLExpiry(state string, chargeOff time.Time) time.Time {
	if chargeOff.IsZero() {
		return time.Time{}
	}
	years := solYears[state]
	if years == 0 {
		years = defaultSOLYears
	}
	return chargeOff.AddDate(years, 0, 0)
}
