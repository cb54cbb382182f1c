// Package schema defines the closed universe of columns and values the
// query engine accepts. Both the prompt builder and the compiler consult
// this package, so the vocabulary the LLM is instructed to use and the
// vocabulary the compiler will accept cannot drift apart.
package schema

import "sort"

// Table is the only table the engine queries.
const Table = "combined-schedule"

// CountColumn is the alias used for the synthetic count column.
const CountColumn = "# Games"

// dimensions lists every column that may be selected or grouped by,
// in display order.
var dimensions = []string{
	"date",
	"time",
	"home_team",
	"road_team",
	"day",
	"league",
	"sport",
	"level",
	"home_city",
	"home_state",
	"location",
}

// filterOnly lists pseudo-columns usable in filters but never as a
// dimension. either_team matches a substring against home OR road team.
var filterOnly = []string{"either_team"}

// highCardinality lists columns filtered by case-insensitive substring
// rather than by exact value.
var highCardinality = []string{"home_team", "road_team", "location", "home_city"}

// Sports is the allowlist for the sport column.
var Sports = []string{
	"baseball",
	"basketball",
	"football",
	"hockey",
	"lacrosse",
	"soccer",
	"softball",
	"volleyball",
}

// Levels is the allowlist for the level column.
var Levels = []string{"pro", "college"}

// Days is the allowlist for the day column.
var Days = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// LeagueNames maps league codes to display names. The key set is the
// allowlist for the league column.
var LeagueNames = map[string]string{
	"MLB":   "Major League Baseball",
	"MLS":   "Major League Soccer",
	"NBA":   "National Basketball Association",
	"NCAAF": "College Football",
	"NCAAH": "College Hockey",
	"NCAAM": "Men's College Basketball",
	"NCAAS": "College Soccer",
	"NCAAW": "Women's College Basketball",
	"NFL":   "National Football League",
	"NHL":   "National Hockey League",
	"NWSL":  "National Women's Soccer League",
	"WNBA":  "Women's National Basketball Association",
}

// StateCodes maps full state and province names to the two-letter codes
// stored in the home_state column. The value set is the allowlist for
// home_state.
var StateCodes = map[string]string{
	"Alabama":               "AL",
	"Alaska":                "AK",
	"Arizona":               "AZ",
	"Arkansas":              "AR",
	"California":            "CA",
	"Colorado":              "CO",
	"Connecticut":           "CT",
	"Delaware":              "DE",
	"District of Columbia":  "DC",
	"Florida":               "FL",
	"Georgia":               "GA",
	"Hawaii":                "HI",
	"Idaho":                 "ID",
	"Illinois":              "IL",
	"Indiana":               "IN",
	"Iowa":                  "IA",
	"Kansas":                "KS",
	"Kentucky":              "KY",
	"Louisiana":             "LA",
	"Maine":                 "ME",
	"Maryland":              "MD",
	"Massachusetts":         "MA",
	"Michigan":              "MI",
	"Minnesota":             "MN",
	"Mississippi":           "MS",
	"Missouri":              "MO",
	"Montana":               "MT",
	"Nebraska":              "NE",
	"Nevada":                "NV",
	"New Hampshire":         "NH",
	"New Jersey":            "NJ",
	"New Mexico":            "NM",
	"New York":              "NY",
	"North Carolina":        "NC",
	"North Dakota":          "ND",
	"Ohio":                  "OH",
	"Oklahoma":              "OK",
	"Oregon":                "OR",
	"Pennsylvania":          "PA",
	"Rhode Island":          "RI",
	"South Carolina":        "SC",
	"South Dakota":          "SD",
	"Tennessee":             "TN",
	"Texas":                 "TX",
	"Utah":                  "UT",
	"Vermont":               "VT",
	"Virginia":              "VA",
	"Washington":            "WA",
	"West Virginia":         "WV",
	"Wisconsin":             "WI",
	"Wyoming":               "WY",

	"Alberta":                   "AB",
	"British Columbia":          "BC",
	"Manitoba":                  "MB",
	"New Brunswick":             "NB",
	"Newfoundland and Labrador": "NL",
	"Nova Scotia":               "NS",
	"Ontario":                   "ON",
	"Prince Edward Island":      "PE",
	"Quebec":                    "QC",
	"Saskatchewan":              "SK",
}

// ValidDimensions returns the set of columns that may be selected or
// grouped by.
func ValidDimensions() map[string]bool {
	return toSet(dimensions)
}

// DimensionList returns the valid dimensions in display order.
func DimensionList() []string {
	out := make([]string, len(dimensions))
	copy(out, dimensions)
	return out
}

// FilterOnlyFields returns pseudo-columns usable only in filters.
func FilterOnlyFields() map[string]bool {
	return toSet(filterOnly)
}

// HighCardinalityColumns returns the set of substring-filter columns.
func HighCardinalityColumns() map[string]bool {
	return toSet(highCardinality)
}

// LowCardinalityAllowlist returns the closed value set for a
// fixed-vocabulary column, or nil if the column has no fixed vocabulary.
func LowCardinalityAllowlist(column string) map[string]bool {
	switch column {
	case "sport":
		return toSet(Sports)
	case "level":
		return toSet(Levels)
	case "day":
		return toSet(Days)
	case "league":
		set := make(map[string]bool, len(LeagueNames))
		for code := range LeagueNames {
			set[code] = true
		}
		return set
	case "home_state":
		set := make(map[string]bool, len(StateCodes))
		for _, code := range StateCodes {
			set[code] = true
		}
		return set
	default:
		return nil
	}
}

// LowCardinalityColumns returns the fixed-vocabulary filter columns in a
// stable order.
func LowCardinalityColumns() []string {
	return []string{"sport", "league", "level", "day", "home_state"}
}

// LeagueCodes returns the league allowlist sorted for stable prompt and
// SQL output.
func LeagueCodes() []string {
	return sortedKeys(LeagueNames)
}

// StateNames returns the full state/province names sorted alphabetically.
func StateNames() []string {
	return sortedKeys(StateCodes)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
