package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/skedhub/sked-engine/pkg/apperrors"
)

// fakeGateway records the statement it receives and returns canned
// rows or an error.
type fakeGateway struct {
	rows    []map[string]any
	err     error
	lastSQL string
}

func (f *fakeGateway) Execute(ctx context.Context, stmt string) ([]map[string]any, error) {
	f.lastSQL = stmt
	if f.err != nil {
		return nil, f.err
	}
	if f.rows == nil {
		return []map[string]any{}, nil
	}
	return f.rows, nil
}

func fixedNow() time.Time {
	// 2026-03-04 is a Wednesday.
	return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
}

func doQuery(t *testing.T, gateway *fakeGateway, rawQuery string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewQueryHandler(gateway, zap.NewNop(), fixedNow)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/query?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestQuery_Success(t *testing.T) {
	gateway := &fakeGateway{rows: []map[string]any{{"league": "NHL", "date": "2026-03-06"}}}

	rec := doQuery(t, gateway, "dimensions=league,date&limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	rows := body["rows"].([]any)
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
	sqlText := body["sql"].(string)
	if !strings.Contains(sqlText, "SELECT `league`, `date`") || !strings.HasSuffix(sqlText, "LIMIT 10") {
		t.Errorf("unexpected sql: %q", sqlText)
	}
	if gateway.lastSQL != sqlText {
		t.Error("reported SQL should match the executed SQL")
	}
}

func TestQuery_Filters(t *testing.T) {
	gateway := &fakeGateway{}

	rec := doQuery(t, gateway, "dimensions=date&league=NBA,NHL&home_team=Celtics&either_team=Yankees&either_team=Red+Sox")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	for _, want := range []string{
		"`league` IN ('NBA', 'NHL')",
		"LOWER(`home_team`) LIKE LOWER('%Celtics%')",
		"LIKE LOWER('%Yankees%')",
		"LIKE LOWER('%Red Sox%')",
	} {
		if !strings.Contains(gateway.lastSQL, want) {
			t.Errorf("executed SQL missing %q: %q", want, gateway.lastSQL)
		}
	}
}

func TestQuery_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		wantMsg  string
	}{
		{
			name:     "nothing selected",
			rawQuery: "league=NBA",
			wantMsg:  "Select at least one dimension or turn on count to run a query.",
		},
		{
			name:     "limit too large",
			rawQuery: "dimensions=date&limit=9999",
			wantMsg:  "Row limit must be between 1 and 5000.",
		},
		{
			name:     "inverted range",
			rawQuery: "dimensions=date&date_mode=range&date_start=2026-04-01&date_end=2026-03-01",
			wantMsg:  "Start date must be before or equal to end date.",
		},
		{
			name:     "non-positive day count",
			rawQuery: "dimensions=date&date_mode=last_n&date_n=0",
			wantMsg:  "Number of days must be greater than 0.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doQuery(t, &fakeGateway{}, tt.rawQuery)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestQuery_StoreFailureIsGeneric(t *testing.T) {
	gateway := &fakeGateway{
		err: fmt.Errorf("%w: status 403: API token missing", apperrors.ErrStoreUnavailable),
	}

	rec := doQuery(t, gateway, "dimensions=date")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["error"] != msgDataUnavailable {
		t.Errorf("error = %q, want %q", body["error"], msgDataUnavailable)
	}
	// Store detail must never reach the client.
	if strings.Contains(rec.Body.String(), "API token missing") {
		t.Errorf("store detail leaked: %s", rec.Body.String())
	}
}

func TestQuery_CountParam(t *testing.T) {
	gateway := &fakeGateway{}

	rec := doQuery(t, gateway, "dimensions=day&count=1&league=NBA")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(gateway.lastSQL, "COUNT(*) AS `# Games`") {
		t.Errorf("count missing from SQL: %q", gateway.lastSQL)
	}
	if !strings.Contains(gateway.lastSQL, "GROUP BY `day`") {
		t.Errorf("grouping missing from SQL: %q", gateway.lastSQL)
	}
}
