package query

import "strings"

// escapeLike makes a free-text value safe inside a quoted LIKE pattern:
// backslashes are doubled, single quotes use the SQL standard doubled
// form, and the LIKE wildcards % and _ are escaped so the value matches
// only as a literal substring.
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `''`)
	value = strings.ReplaceAll(value, `%`, `\%`)
	value = strings.ReplaceAll(value, `_`, `\_`)
	return value
}

// quoteString wraps a value in single quotes with doubled-quote escaping.
// Values passed here have already been validated against an allowlist or
// produced by the compiler itself (dates).
func quoteString(value string) string {
	return "'" + strings.ReplaceAll(value, `'`, `''`) + "'"
}

// quoteIdent backtick-quotes an identifier. Identifiers only ever come
// from the schema package's fixed column set.
func quoteIdent(name string) string {
	return "`" + name + "`"
}
