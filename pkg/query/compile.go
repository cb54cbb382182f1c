package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/skedhub/sked-engine/pkg/schema"
)

var (
	validDimensions        = schema.ValidDimensions()
	filterOnlyFields       = schema.FilterOnlyFields()
	highCardinalityColumns = schema.HighCardinalityColumns()
)

// Compile deterministically turns a Config into a single SELECT against
// the combined-schedule table, or returns a *ValidationError describing
// what the user must fix. Every string that reaches the SQL text has
// either been validated against a closed allowlist or passed through
// escapeLike; nothing user- or LLM-controlled is interpolated raw.
func Compile(cfg *Config, today time.Time) (string, error) {
	if len(cfg.Dimensions) == 0 && !cfg.Count {
		return "", validationErrorf(msgRunRequirement)
	}

	limit := cfg.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit || limit > MaxLimit {
		return "", validationErrorf(msgLimitBounds)
	}

	// Unknown dimensions and filter-only pseudo-columns are dropped, not
	// rejected: the LLM inventing a column should degrade the query, not
	// kill it.
	var dims []string
	for _, d := range cfg.Dimensions {
		if validDimensions[d] && !filterOnlyFields[d] {
			dims = append(dims, d)
		}
	}
	if len(dims) == 0 && !cfg.Count {
		return "", validationErrorf(msgRunRequirement)
	}

	var conds []string

	// Fixed-vocabulary filters: intersect with the allowlist and
	// silently drop anything unrecognized.
	for _, col := range schema.LowCardinalityColumns() {
		allowlist := schema.LowCardinalityAllowlist(col)
		var kept []string
		for _, v := range cfg.Filters[col] {
			if allowlist[v] {
				kept = append(kept, quoteString(v))
			}
		}
		if len(kept) > 0 {
			conds = append(conds, fmt.Sprintf("%s IN (%s)", quoteIdent(col), strings.Join(kept, ", ")))
		}
	}

	// Free-text filters: case-insensitive substring match, escaped.
	for _, col := range []string{"home_team", "road_team", "location", "home_city"} {
		values := cfg.Filters[col]
		if len(values) == 0 || values[0] == "" {
			continue
		}
		conds = append(conds, likeCondition(col, values[0]))
	}

	// either_team: each value matches home OR road; multiple values are
	// ANDed, which is only meaningful for one or two values (a specific
	// matchup).
	for _, v := range cfg.Filters["either_team"] {
		if v == "" {
			continue
		}
		conds = append(conds, fmt.Sprintf("(%s OR %s)",
			likeCondition("home_team", v), likeCondition("road_team", v)))
	}

	dateRange, err := resolveDateRange(cfg, today)
	if err != nil {
		return "", err
	}
	if dateRange != nil {
		if dateRange.OpenEnded {
			conds = append(conds, fmt.Sprintf("%s >= %s",
				quoteIdent("date"), quoteString(dateRange.Start.Format(dateLayout))))
		} else {
			conds = append(conds, fmt.Sprintf("%s BETWEEN %s AND %s",
				quoteIdent("date"),
				quoteString(dateRange.Start.Format(dateLayout)),
				quoteString(dateRange.End.Format(dateLayout))))
		}
	}

	where := "1=1"
	if len(conds) > 0 {
		where += " AND " + strings.Join(conds, " AND ")
	}

	selectCols := make([]string, 0, len(dims)+1)
	for _, d := range dims {
		selectCols = append(selectCols, quoteIdent(d))
	}
	if cfg.Count {
		selectCols = append(selectCols, fmt.Sprintf("COUNT(*) AS %s", quoteIdent(schema.CountColumn)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(selectCols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(schema.Table))
	sb.WriteString(" WHERE ")
	sb.WriteString(where)

	if cfg.Count && len(dims) > 0 {
		groupCols := make([]string, len(dims))
		for i, d := range dims {
			groupCols[i] = quoteIdent(d)
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(groupCols, ", "))
	}

	if orderBy := orderByClause(cfg, dims); orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(orderBy)
	}

	sb.WriteString(fmt.Sprintf(" LIMIT %d", limit))
	return sb.String(), nil
}

// orderByClause picks the ORDER BY target. An explicit sort column is
// honored only when it resolves to a surviving dimension or, when
// counting, the count alias. Otherwise counting queries sort by the
// count descending and plain queries by their first dimension.
func orderByClause(cfg *Config, dims []string) string {
	dir := "ASC"
	if strings.EqualFold(cfg.SortDir, "desc") {
		dir = "DESC"
	}

	if cfg.SortColumn != "" {
		for _, d := range dims {
			if cfg.SortColumn == d {
				return quoteIdent(d) + " " + dir
			}
		}
		if cfg.Count && cfg.SortColumn == schema.CountColumn {
			return quoteIdent(schema.CountColumn) + " " + dir
		}
	}

	if cfg.Count && len(dims) > 0 {
		return quoteIdent(schema.CountColumn) + " DESC"
	}
	if len(dims) > 0 {
		return quoteIdent(dims[0]) + " ASC"
	}
	return ""
}

func likeCondition(column, value string) string {
	return fmt.Sprintf("LOWER(%s) LIKE LOWER('%%%s%%')", quoteIdent(column), escapeLike(value))
}
