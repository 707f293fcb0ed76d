package geocoder

import "strings"

// Unknown is written in place of a name when resolution fails or the
// response carries no usable fields.
const Unknown = "unknown"

// Address holds the subset of address components this tool reads from a
// reverse-geocoding response. The schema is controlled by the external
// service; absent keys simply decode to empty strings.
type Address struct {
	City     string `json:"city"`
	Town     string `json:"town"`
	Hamlet   string `json:"hamlet"`
	Township string `json:"township"`
	Village  string `json:"village"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Province string `json:"province"`
	Country  string `json:"country"`
}

// ComposeName folds an address into a single place name. The city slot takes
// the first present of city, town, hamlet, township, village and suburb; the
// region slot the first of state and province. Whichever of city, region and
// country are non-empty are joined with ", " in that fixed order. An address
// with no usable fields composes to the empty string.
func ComposeName(a Address) string {
	city := firstNonEmpty(a.City, a.Town, a.Hamlet, a.Township, a.Village, a.Suburb)
	region := firstNonEmpty(a.State, a.Province)

	parts := make([]string, 0, 3)
	for _, p := range []string{city, region, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// firstNonEmpty returns the first non-empty value, or "" if there is none.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
