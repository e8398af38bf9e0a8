package zenputsync

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func testClient(baseURL string, pageSize int) *zenputClient {
	return &zenputClient{
		baseURL:  baseURL,
		token:    "test-token",
		tokenHdr: "X-API-TOKEN",
		http:     &http.Client{Timeout: 5 * time.Second},
		limiter:  time.Tick(time.Millisecond),
		pageSize: pageSize,
	}
}

func submissionsJSON(ids ...int) string {
	body := `{"data":[`
	for i, id := range ids {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"id":%d,"smetadata":{"location":{"id":5001},"created_by":{"display_name":"Laura"},"date_submitted":"2026-02-10T09:30:00Z"},"answers":[]}`, id)
	}
	return body + `]}`
}

func TestFetchSubmissionsPaginates(t *testing.T) {
	var offsets []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-TOKEN"); got != "test-token" {
			t.Errorf("token header = %q", got)
		}
		if got := r.URL.Query().Get("form_template_id"); got != "877138" {
			t.Errorf("form_template_id = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit = %q", got)
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)

		switch offset {
		case 0:
			fmt.Fprint(w, submissionsJSON(1, 2))
		case 2:
			fmt.Fprint(w, submissionsJSON(3, 4))
		default:
			fmt.Fprint(w, submissionsJSON(5))
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)
	subs := c.FetchSubmissions(context.Background(), 877138, nil)

	if len(subs) != 5 {
		t.Fatalf("len(subs) = %d, want 5", len(subs))
	}
	if len(offsets) != 3 || offsets[0] != 0 || offsets[1] != 2 || offsets[2] != 4 {
		t.Fatalf("offsets = %v, want [0 2 4]", offsets)
	}
	if subs[4].SubmissionId() != "5" {
		t.Fatalf("last submission id = %q, want 5", subs[4].SubmissionId())
	}
}

func TestFetchSubmissionsSendsCheckpointCursor(t *testing.T) {
	var after string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		after = r.URL.Query().Get("date_submitted_after")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	cursor := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	c := testClient(srv.URL, 100)
	c.FetchSubmissions(context.Background(), 877139, &cursor)

	if after != "2026-02-10T09:30:00Z" {
		t.Fatalf("date_submitted_after = %q", after)
	}
}

func TestFetchSubmissionsOmitsCursorOnFirstRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("date_submitted_after") {
			t.Error("date_submitted_after sent without a checkpoint")
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 100)
	if subs := c.FetchSubmissions(context.Background(), 877138, nil); len(subs) != 0 {
		t.Fatalf("len(subs) = %d, want 0", len(subs))
	}
}

func TestFetchSubmissionsReturnsPartialOnError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, submissionsJSON(1, 2))
			return
		}
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)
	subs := c.FetchSubmissions(context.Background(), 877138, nil)

	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want the partial first page", len(subs))
	}
}
