// Package query compiles schedule query configurations into SQL against
// the combined-schedule table. The configuration grammar is closed: every
// dimension and low-cardinality filter value must appear in the schema
// package's allowlists, and every free-text value is escaped before it
// reaches SQL text.
package query

import (
	"encoding/json"

	"github.com/skedhub/sked-engine/pkg/jsonutil"
)

// Limit bounds for compiled queries.
const (
	DefaultLimit = 500
	MinLimit     = 1
	MaxLimit     = 5000
)

// Config is the contract between the NL translation layer and the
// compiler. It is built either from LLM output or directly from HTTP
// query parameters, compiled once, and discarded.
type Config struct {
	Dimensions []string            `json:"dimensions"`
	Filters    map[string][]string `json:"filters"`
	DateMode   DateMode            `json:"date_mode"`
	DateExact  string              `json:"date_exact"`
	DateStart  string              `json:"date_start"`
	DateEnd    string              `json:"date_end"`
	DateYear   int                 `json:"date_year"`
	DateN      int                 `json:"date_n"`
	AnchorDate string              `json:"anchor_date"`
	Count      bool                `json:"count"`
	Limit      int                 `json:"limit"`
	SortColumn string              `json:"sort_column"`
	SortDir    string              `json:"sort_dir"`
}

// rawConfig mirrors Config with RawMessage fields so LLM type noise
// (numbers as strings, scalars where lists belong) can be absorbed.
type rawConfig struct {
	Dimensions []string                   `json:"dimensions"`
	Filters    map[string]json.RawMessage `json:"filters"`
	DateMode   string                     `json:"date_mode"`
	DateExact  json.RawMessage            `json:"date_exact"`
	DateStart  json.RawMessage            `json:"date_start"`
	DateEnd    json.RawMessage            `json:"date_end"`
	DateYear   json.RawMessage            `json:"date_year"`
	DateN      json.RawMessage            `json:"date_n"`
	AnchorDate json.RawMessage            `json:"anchor_date"`
	Count      json.RawMessage            `json:"count"`
	Limit      json.RawMessage            `json:"limit"`
	SortColumn json.RawMessage            `json:"sort_column"`
	SortDir    json.RawMessage            `json:"sort_dir"`
}

// UnmarshalJSON decodes a Config leniently. Scalar filter values become
// one-element lists, numeric fields accept numeric strings, and a
// missing limit falls back to DefaultLimit.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Dimensions = raw.Dimensions
	c.Filters = nil
	if len(raw.Filters) > 0 {
		c.Filters = make(map[string][]string, len(raw.Filters))
		for col, val := range raw.Filters {
			if values := jsonutil.FlexibleStringList(val); len(values) > 0 {
				c.Filters[col] = values
			}
		}
	}

	c.DateMode = DateMode(raw.DateMode)
	c.DateExact = jsonutil.FlexibleString(raw.DateExact)
	c.DateStart = jsonutil.FlexibleString(raw.DateStart)
	c.DateEnd = jsonutil.FlexibleString(raw.DateEnd)
	c.DateYear = jsonutil.FlexibleInt(raw.DateYear, 0)
	c.DateN = jsonutil.FlexibleInt(raw.DateN, 0)
	c.AnchorDate = jsonutil.FlexibleString(raw.AnchorDate)
	c.Count = jsonutil.FlexibleBool(raw.Count)
	c.Limit = jsonutil.FlexibleInt(raw.Limit, DefaultLimit)
	c.SortColumn = jsonutil.FlexibleString(raw.SortColumn)
	c.SortDir = jsonutil.FlexibleString(raw.SortDir)
	return nil
}

// FreeTextValues returns every filter value that will be matched as a
// substring rather than validated against an allowlist, keyed by column.
// Callers use this to screen LLM-originated values before compiling.
func (c *Config) FreeTextValues() map[string][]string {
	if len(c.Filters) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for col, values := range c.Filters {
		if highCardinalityColumns[col] || col == "either_team" {
			out[col] = values
		}
	}
	return out
}
