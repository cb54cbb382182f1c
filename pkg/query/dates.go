package query

import "time"

// DateMode selects the date-resolution algorithm for a query. The set is
// closed; resolveDateRange switches over every member and rejects
// anything else, so an unrecognized tag can never silently mean
// "no date filter".
type DateMode string

const (
	DateModeNone        DateMode = ""
	DateModeExact       DateMode = "exact"
	DateModeToday       DateMode = "today"
	DateModeOnOrAfter   DateMode = "on_or_after"
	DateModeThisWeekend DateMode = "this_weekend"
	DateModeRange       DateMode = "range"
	DateModeFuture      DateMode = "future"
	DateModeNextWeek    DateMode = "next_week"
	DateModeLastN       DateMode = "last_n"
	DateModeNextN       DateMode = "next_n"
	DateModeYear        DateMode = "year"

	// Legacy aliases kept for saved links: fixed trailing windows.
	DateModeLastWeek  DateMode = "last_week"
	DateModeLastMonth DateMode = "last_month"
)

// dateLayout is the wire format for all date fields.
const dateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] date window. OpenEnded ranges
// have no upper bound and compile to a >= predicate.
type DateRange struct {
	Start     time.Time
	End       time.Time
	OpenEnded bool
}

// resolveDateRange maps a config's date mode to a concrete range, or nil
// when the query is unfiltered by date. The compiler never reads a wall
// clock; today is supplied by the caller so resolution is testable.
func resolveDateRange(cfg *Config, today time.Time) (*DateRange, error) {
	today = truncateToDay(today)
	anchor := parseDateOr(cfg.AnchorDate, today)

	switch cfg.DateMode {
	case DateModeNone:
		return nil, nil

	case DateModeExact:
		d, err := time.Parse(dateLayout, cfg.DateExact)
		if err != nil {
			// Unparseable exact date means no date filter, not an error.
			return nil, nil
		}
		return &DateRange{Start: d, End: d}, nil

	case DateModeToday:
		return &DateRange{Start: anchor, End: anchor}, nil

	case DateModeOnOrAfter:
		return &DateRange{Start: parseDateOr(cfg.DateStart, anchor), OpenEnded: true}, nil

	case DateModeFuture:
		return &DateRange{Start: anchor, OpenEnded: true}, nil

	case DateModeThisWeekend:
		start, end := WeekendRange(anchor)
		return &DateRange{Start: start, End: end}, nil

	case DateModeRange:
		start, errStart := time.Parse(dateLayout, cfg.DateStart)
		end, errEnd := time.Parse(dateLayout, cfg.DateEnd)
		if errStart != nil || errEnd != nil {
			return nil, nil
		}
		if start.After(end) {
			return nil, validationErrorf(msgDateOrder)
		}
		return &DateRange{Start: start, End: end}, nil

	case DateModeYear:
		if cfg.DateYear < 1000 || cfg.DateYear > 9999 {
			return nil, nil
		}
		return &DateRange{
			Start: time.Date(cfg.DateYear, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(cfg.DateYear, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil

	case DateModeLastN:
		if cfg.DateN <= 0 {
			return nil, validationErrorf(msgDateNPositive)
		}
		return &DateRange{Start: anchor.AddDate(0, 0, -(cfg.DateN - 1)), End: anchor}, nil

	case DateModeNextN:
		if cfg.DateN <= 0 {
			return nil, validationErrorf(msgDateNPositive)
		}
		return &DateRange{Start: anchor, End: anchor.AddDate(0, 0, cfg.DateN-1)}, nil

	case DateModeNextWeek:
		return &DateRange{Start: anchor, End: anchor.AddDate(0, 0, 6)}, nil

	case DateModeLastWeek:
		return &DateRange{Start: anchor.AddDate(0, 0, -6), End: anchor}, nil

	case DateModeLastMonth:
		return &DateRange{Start: anchor.AddDate(0, 0, -29), End: anchor}, nil

	default:
		return nil, validationErrorf("Unknown date mode %q.", string(cfg.DateMode))
	}
}

// WeekendRange returns the Friday through Sunday window for the weekend
// containing or following anchor. Friday, Saturday, and Sunday anchors
// fall inside their own weekend; Monday through Thursday anchors roll
// forward to the upcoming Friday.
func WeekendRange(anchor time.Time) (time.Time, time.Time) {
	anchor = truncateToDay(anchor)
	var friday time.Time
	switch anchor.Weekday() {
	case time.Saturday:
		friday = anchor.AddDate(0, 0, -1)
	case time.Sunday:
		friday = anchor.AddDate(0, 0, -2)
	default:
		friday = anchor.AddDate(0, 0, int(time.Friday-anchor.Weekday()))
	}
	return friday, friday.AddDate(0, 0, 2)
}

func parseDateOr(value string, fallback time.Time) time.Time {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return fallback
	}
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
