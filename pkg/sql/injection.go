package sql

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a filter value that libinjection
// flagged as a SQL injection pattern.
type InjectionCheckResult struct {
	Column      string // Filter column the value was supplied for
	Value       string // The offending value
	Fingerprint string // libinjection fingerprint of the detected pattern
}

// CheckFilterValue screens one free-text filter value for SQL injection
// patterns. The compiler escapes every free-text value regardless; this
// is defense in depth against LLM-originated strings. Ordinary values
// with apostrophes ("O'Brien") pass.
//
// Returns nil when the value is clean.
func CheckFilterValue(column, value string) *InjectionCheckResult {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return nil
	}
	return &InjectionCheckResult{
		Column:      column,
		Value:       value,
		Fingerprint: string(fingerprint),
	}
}

// CheckFreeTextFilters screens every substring-filter value in a query
// configuration. Returns one result per flagged value; an empty slice
// means all values are clean.
func CheckFreeTextFilters(filters map[string][]string) []*InjectionCheckResult {
	var results []*InjectionCheckResult
	for column, values := range filters {
		for _, value := range values {
			if result := CheckFilterValue(column, value); result != nil {
				results = append(results, result)
			}
		}
	}
	return results
}
