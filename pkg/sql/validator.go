// Package sql guards the boundary between compiled query text and the
// external schedule store: single-statement normalization for outgoing
// SQL and injection screening for LLM-originated filter values.
package sql

import (
	"errors"
	"strings"
)

var (
	// ErrMultipleStatements indicates the query contains more than one
	// SQL statement.
	ErrMultipleStatements = errors.New("multiple SQL statements not allowed; only single statements are permitted")

	// ErrNotReadStatement indicates the statement is not a read query.
	// The engine only ever issues reads against the schedule store.
	ErrNotReadStatement = errors.New("only read (SELECT) statements may be sent to the schedule store")
)

// NormalizeRead prepares a statement for submission to the store. It
// trims whitespace, strips a trailing semicolon, rejects anything with a
// remaining semicolon outside string literals, and rejects statements
// whose leading keyword is not SELECT.
func NormalizeRead(stmt string) (string, error) {
	normalized := stripTrailingSemicolon(strings.TrimSpace(stmt))
	if normalized == "" {
		return "", ErrNotReadStatement
	}

	if hasSemicolonOutsideStrings(normalized) {
		return "", ErrMultipleStatements
	}

	if !IsReadStatement(normalized) {
		return "", ErrNotReadStatement
	}

	return normalized, nil
}

// IsReadStatement reports whether the statement's leading keyword marks
// it as a synchronous read. The store routes reads and writes
// differently; this engine only issues reads.
func IsReadStatement(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	return strings.EqualFold(fields[0], "SELECT")
}

// hasSemicolonOutsideStrings scans for a semicolon that is not inside a
// single- or double-quoted literal. SQL standard doubled quotes ('') are
// handled by exiting and immediately re-entering the string state.
func hasSemicolonOutsideStrings(stmt string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)

	for _, char := range stmt {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		prevChar = char
	}

	return false
}

func stripTrailingSemicolon(stmt string) string {
	stmt = strings.TrimRight(stmt, " \t\n\r")
	if strings.HasSuffix(stmt, ";") {
		stmt = strings.TrimRight(strings.TrimSuffix(stmt, ";"), " \t\n\r")
	}
	return stmt
}
