package pricing

import "strings"

type Zone int

const (
	Zone1 Zone = iota + 1
	Zone2
	Zone3
	Zone4
	Zone5
)

// FreeShippingThresholdCents is the subtotal at which shipping becomes free in every zone.
const FreeShippingThresholdCents int64 = 15000

// FallbackZone is used for codes that are not in the table.
const FallbackZone = Zone4

var zoneRatesCents = map[Zone]int64{
	Zone1: 599,
	Zone2: 799,
	Zone3: 999,
	Zone4: 1299,
	Zone5: 1999,
}

// Zones are measured from the fulfillment warehouse on the west coast.
var stateZones = map[string]Zone{
	// Zone 1
	"CA": Zone1, "NV": Zone1, "OR": Zone1, "WA": Zone1, "AZ": Zone1,
	// Zone 2
	"ID": Zone2, "UT": Zone2, "MT": Zone2, "WY": Zone2, "CO": Zone2, "NM": Zone2,
	// Zone 3
	"ND": Zone3, "SD": Zone3, "NE": Zone3, "KS": Zone3, "OK": Zone3, "TX": Zone3,
	"MN": Zone3, "IA": Zone3, "MO": Zone3, "AR": Zone3, "LA": Zone3,
	// Zone 4
	"WI": Zone4, "IL": Zone4, "MI": Zone4, "IN": Zone4, "OH": Zone4, "KY": Zone4,
	"TN": Zone4, "MS": Zone4, "AL": Zone4, "GA": Zone4, "FL": Zone4, "SC": Zone4,
	"NC": Zone4, "VA": Zone4, "WV": Zone4, "DC": Zone4, "MD": Zone4, "DE": Zone4,
	"PA": Zone4, "NJ": Zone4, "NY": Zone4, "CT": Zone4, "RI": Zone4, "MA": Zone4,
	"VT": Zone4, "NH": Zone4, "ME": Zone4,
	// Zone 5
	"AK": Zone5, "HI": Zone5, "PR": Zone5, "GU": Zone5, "VI": Zone5, "AS": Zone5, "MP": Zone5,
}

// ZoneFor returns the shipping zone for a state code; unknown codes map to FallbackZone.
func ZoneFor(stateCode string) Zone {
	if z, ok := stateZones[strings.ToUpper(strings.TrimSpace(stateCode))]; ok {
		return z
	}
	return FallbackZone
}

// ZoneRate returns the flat rate of a zone in cents.
func ZoneRate(z Zone) int64 {
	if rate, ok := zoneRatesCents[z]; ok {
		return rate
	}
	return zoneRatesCents[FallbackZone]
}

// ShippingCost returns the flat zone rate for a destination, or 0 when the subtotal reaches the free-shipping threshold.
func ShippingCost(stateCode string, subtotalCents int64) int64 {
	if subtotalCents >= FreeShippingThresholdCents {
		return 0
	}
	return ZoneRate(ZoneFor(stateCode))
}

// TaxCents applies a flat percentage to a taxable amount.
func TaxCents(taxableCents int64, taxPercent float64) int64 {
	if taxPercent <= 0 || taxableCents <= 0 {
		return 0
	}
	return ApplyMarkup(taxableCents, taxPercent) - taxableCents
}
