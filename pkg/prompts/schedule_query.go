// Package prompts builds the prompt that turns a free-text schedule
// question into a structured query configuration. Allowed values are
// generated from the schema package so the vocabulary offered to the
// model is exactly the vocabulary the compiler accepts.
package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/skedhub/sked-engine/pkg/schema"
)

// BuildScheduleQuerySystemMessage returns the system message for the
// translation call.
func BuildScheduleQuerySystemMessage() string {
	return `You are a sports schedule query translator. You convert natural-language questions about sports schedules into a strict JSON query configuration. You never answer the question yourself and you never emit anything except the required JSON object.`
}

// BuildScheduleQueryPrompt creates the translation prompt for a
// question. Deterministic given identical inputs: the only variable
// parts are the question itself and the supplied date.
func BuildScheduleQueryPrompt(question string, today time.Time) string {
	var prompt strings.Builder

	prompt.WriteString("# Schedule Query Translation\n\n")
	prompt.WriteString("Translate the user's question about sports schedules into a query configuration.\n\n")

	prompt.WriteString("## Output Format\n\n")
	prompt.WriteString("Respond with exactly one JSON object and nothing else. No markdown, no code fences, no commentary.\n")
	prompt.WriteString("- If the question can be answered as a schedule query: `{\"config\": {...}}`\n")
	prompt.WriteString("- If it cannot (not about schedules, or asks for data we do not have): `{\"error\": \"one short sentence explaining why\"}`\n")
	prompt.WriteString("Never emit both keys.\n\n")

	prompt.WriteString("## Config Fields\n\n")
	prompt.WriteString("- `dimensions`: list of columns to show, chosen from: ")
	prompt.WriteString(strings.Join(schema.DimensionList(), ", "))
	prompt.WriteString("\n")
	prompt.WriteString("- `filters`: object mapping a column to its filter.\n")
	prompt.WriteString("  - Exact-value columns (use lists of allowed values only): sport, league, level, day, home_state\n")
	prompt.WriteString("  - Substring columns (use a single string): home_team, road_team, location, home_city\n")
	prompt.WriteString("  - `either_team`: list of 1-2 team substrings, each matching the home OR road team. Use two values only to pin down a specific matchup.\n")
	prompt.WriteString("- `date_mode` plus its companion fields (see table below)\n")
	prompt.WriteString("- `count`: true to count games instead of listing them (dimensions become the grouping)\n")
	prompt.WriteString("- `limit`: integer between 1 and 5000 (omit for the default of 500)\n")
	prompt.WriteString("- `sort_column`, `sort_dir`: optional; sort_column must be a selected dimension or \"" + schema.CountColumn + "\", sort_dir is \"asc\" or \"desc\"\n\n")

	writeDateModeTable(&prompt, today)
	writeAllowedValues(&prompt)
	writeExamples(&prompt, today)

	prompt.WriteString("## Question\n\n")
	prompt.WriteString(question)
	prompt.WriteString("\n")

	return prompt.String()
}

// writeDateModeTable emits the date-mode reference with worked
// arithmetic so the model can resolve relative expressions itself.
func writeDateModeTable(prompt *strings.Builder, today time.Time) {
	todayStr := today.Format("2006-01-02")
	tomorrow := today.AddDate(0, 0, 1).Format("2006-01-02")

	prompt.WriteString("## Date Modes\n\n")
	prompt.WriteString(fmt.Sprintf("Today is %s (%s).\n\n", todayStr, today.Weekday()))
	prompt.WriteString("| date_mode | required fields | meaning |\n")
	prompt.WriteString("|-----------|-----------------|---------|\n")
	prompt.WriteString("| exact | date_exact (YYYY-MM-DD) | games on one date |\n")
	prompt.WriteString("| today | none | games today |\n")
	prompt.WriteString("| this_weekend | none | Friday through Sunday of the current/upcoming weekend |\n")
	prompt.WriteString("| range | date_start, date_end | inclusive date window |\n")
	prompt.WriteString("| on_or_after | date_start | games on or after a date |\n")
	prompt.WriteString("| future | none | games from today onward |\n")
	prompt.WriteString("| next_week | none | today plus the next 6 days |\n")
	prompt.WriteString("| next_n | date_n | today plus the next date_n-1 days |\n")
	prompt.WriteString("| last_n | date_n | today and the preceding date_n-1 days |\n")
	prompt.WriteString("| year | date_year | Jan 1 through Dec 31 of that year |\n\n")

	prompt.WriteString("Worked date arithmetic:\n")
	prompt.WriteString(fmt.Sprintf("- \"tomorrow\" -> {\"date_mode\": \"exact\", \"date_exact\": \"%s\"}\n", tomorrow))
	prompt.WriteString("- \"this week\" / \"next 7 days\" -> {\"date_mode\": \"next_n\", \"date_n\": 7}\n")
	prompt.WriteString(fmt.Sprintf("- \"next month\" -> {\"date_mode\": \"range\", \"date_start\": \"%s\", \"date_end\": \"%s\"}\n",
		firstOfNextMonth(today).Format("2006-01-02"), lastOfNextMonth(today).Format("2006-01-02")))
	prompt.WriteString("- no date mentioned -> omit date_mode entirely\n\n")
}

// writeAllowedValues enumerates every legal low-cardinality value.
func writeAllowedValues(prompt *strings.Builder) {
	prompt.WriteString("## Allowed Values\n\n")
	prompt.WriteString("- sport: " + strings.Join(schema.Sports, ", ") + "\n")
	prompt.WriteString("- level: " + strings.Join(schema.Levels, ", ") + "\n")
	prompt.WriteString("- day: " + strings.Join(schema.Days, ", ") + "\n")

	prompt.WriteString("- league codes:\n")
	for _, code := range schema.LeagueCodes() {
		prompt.WriteString(fmt.Sprintf("  - %s = %s\n", code, schema.LeagueNames[code]))
	}

	prompt.WriteString("- home_state: two-letter codes. Map full names to codes:\n")
	for _, name := range schema.StateNames() {
		prompt.WriteString(fmt.Sprintf("  - %s = %s\n", name, schema.StateCodes[name]))
	}
	prompt.WriteString("\n")
}

// writeExamples emits the fixed few-shot pairs.
func writeExamples(prompt *strings.Builder, today time.Time) {
	prompt.WriteString("## Examples\n\n")

	prompt.WriteString("Question: Celtics games this week\n")
	prompt.WriteString(`{"config": {"dimensions": ["date", "time", "home_team", "road_team", "location"], "filters": {"either_team": ["Celtics"]}, "date_mode": "next_n", "date_n": 7}}`)
	prompt.WriteString("\n\n")

	prompt.WriteString("Question: College hockey games in NJ next month\n")
	prompt.WriteString(fmt.Sprintf(`{"config": {"dimensions": ["date", "home_team", "road_team", "home_city"], "filters": {"league": ["NCAAH"], "home_state": ["NJ"]}, "date_mode": "range", "date_start": "%s", "date_end": "%s"}}`,
		firstOfNextMonth(today).Format("2006-01-02"), lastOfNextMonth(today).Format("2006-01-02")))
	prompt.WriteString("\n\n")

	prompt.WriteString("Question: How many NBA games are there on each day of the week?\n")
	prompt.WriteString(`{"config": {"dimensions": ["day"], "filters": {"league": ["NBA"]}, "count": true}}`)
	prompt.WriteString("\n\n")

	prompt.WriteString("Question: When do the Yankees play the Red Sox?\n")
	prompt.WriteString(`{"config": {"dimensions": ["date", "time", "home_team", "road_team"], "filters": {"either_team": ["Yankees", "Red Sox"]}, "date_mode": "future"}}`)
	prompt.WriteString("\n\n")

	prompt.WriteString("Question: What is the capital of France?\n")
	prompt.WriteString(`{"error": "This question is not about sports schedules."}`)
	prompt.WriteString("\n\n")
}

func firstOfNextMonth(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

func lastOfNextMonth(today time.Time) time.Time {
	return firstOfNextMonth(today).AddDate(0, 1, -1)
}
