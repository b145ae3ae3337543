package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/config"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func testClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	client, err := New(config.RemoteConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, staticTokens{token: token}, nil, logger.NewNop())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":"OK","message":"ok","data":[]}`)
	}))
	defer srv.Close()

	client := NewScheduleClient(testClient(t, srv.URL, "token-123"))
	if _, err := client.List(context.Background(), ports.ScheduleFilter{}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want Bearer token-123", gotAuth)
	}
}

func TestEnvelopeUnwrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":"OK","message":"ok","data":[{"scheduleId":5,"companyName":"acme","title":"interview","scheduleDate":"2026-03-12","createdDate":"2026-03-01T10:00:00"}]}`)
	}))
	defer srv.Close()

	client := NewScheduleClient(testClient(t, srv.URL, ""))
	records, err := client.List(context.Background(), ports.ScheduleFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].ScheduleID != 5 {
		t.Fatalf("wrong records: %+v", records)
	}
	if records[0].CreatedDate.IsZero() {
		t.Error("createdDate not parsed")
	}
}

func TestBareBodyDecoded(t *testing.T) {
	// Some endpoints skip the response envelope; the decoder must accept
	// the payload as-is.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":3,"phone":"010-1234-5678","educations":[{"institutionName":"university","startDate":"2020-03-01","endDate":"2024-02-28"}],"links":[{"title":"github","url":"https://github.com/someone"}]}`)
	}))
	defer srv.Close()

	client := NewPortfolioClient(testClient(t, srv.URL, ""))
	portfolio, err := client.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if portfolio.ID != 3 || portfolio.Phone != "010-1234-5678" {
		t.Fatalf("wrong portfolio: %+v", portfolio)
	}

	entries := portfolio.EntriesOf(entities.EntryKindEducation)
	if len(entries) != 1 || entries[0].InstitutionName != "university" {
		t.Errorf("education entries wrong: %+v", entries)
	}
	links := portfolio.EntriesOf(entities.EntryKindLink)
	if len(links) != 1 || links[0].URL != "https://github.com/someone" {
		t.Errorf("link entries wrong: %+v", links)
	}
	for _, e := range portfolio.Entries {
		if err := e.Validate(); err != nil {
			t.Errorf("entry failed validation: %v", err)
		}
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		retryable  bool
		wantStatus int
	}{
		{
			name:       "server error is retryable",
			status:     http.StatusInternalServerError,
			body:       `{"code":"E500","message":"boom"}`,
			retryable:  true,
			wantStatus: 500,
		},
		{
			name:       "client rejection is not retryable",
			status:     http.StatusBadRequest,
			body:       `{"code":"E400","message":"bad date"}`,
			retryable:  false,
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := NewScheduleClient(testClient(t, srv.URL, ""))
			_, err := client.List(context.Background(), ports.ScheduleFilter{})
			if err == nil {
				t.Fatal("expected error")
			}

			var remoteErr *Error
			if !errors.As(err, &remoteErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if remoteErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", remoteErr.StatusCode, tt.wantStatus)
			}
			if IsRetryable(err) != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", IsRetryable(err), tt.retryable)
			}
		})
	}
}

func TestConnectionFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := NewScheduleClient(testClient(t, srv.URL, ""))
	_, err := client.List(context.Background(), ports.ScheduleFilter{})
	if err == nil {
		t.Fatal("expected error")
	}

	var remoteErr *Error
	if !errors.As(err, &remoteErr) || remoteErr.StatusCode != 0 {
		t.Fatalf("expected transport *Error, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("transport failure should be retryable")
	}
}

func TestMultipartUpdateEncoding(t *testing.T) {
	type gotRequest struct {
		dto   ports.UpdateScheduleRequest
		files []string
	}
	var got gotRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
		}
		if values := r.MultipartForm.Value["dto"]; len(values) == 1 {
			json.Unmarshal([]byte(values[0]), &got.dto)
		}
		for _, f := range r.MultipartForm.File["files"] {
			got.files = append(got.files, f.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":"OK","message":"ok","data":{"scheduleId":1,"companyName":"acme","title":"t","scheduleDate":"2026-03-15"}}`)
	}))
	defer srv.Close()

	detailID := int64(10)
	req := ports.UpdateScheduleRequest{
		CompanyName:  "acme",
		Title:        "t",
		ScheduleDate: "2026-03-15",
		Details: []ports.ScheduleDetailRequest{
			{DetailID: &detailID, Title: "first round", Content: "online"},
		},
		FilesToDelete: []int64{7},
	}
	uploads := []ports.FileUpload{{Name: "notes.txt", Content: []byte("notes")}}

	client := NewScheduleClient(testClient(t, srv.URL, ""))
	updated, err := client.Update(context.Background(), 1, req, uploads)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ScheduleID != 1 {
		t.Errorf("wrong record returned: %+v", updated)
	}

	if got.dto.CompanyName != "acme" {
		t.Errorf("dto not decoded server-side: %+v", got.dto)
	}
	if len(got.dto.FilesToDelete) != 1 || got.dto.FilesToDelete[0] != 7 {
		t.Errorf("filesToDelete must travel inside the dto: %+v", got.dto)
	}
	if len(got.dto.Details) != 1 || got.dto.Details[0].Title != "first round" {
		t.Errorf("details wrong on the wire: %+v", got.dto.Details)
	}
	if len(got.files) != 1 || got.files[0] != "notes.txt" {
		t.Errorf("file parts wrong: %v", got.files)
	}
}

func TestDetailWireKeys(t *testing.T) {
	encoded, err := json.Marshal(ports.ScheduleDetailRequest{Title: "round", Content: "online"})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	json.Unmarshal(encoded, &raw)
	if _, ok := raw["detailTitle"]; !ok {
		t.Errorf("detail title must serialize as detailTitle: %s", encoded)
	}
	if _, ok := raw["detailContent"]; !ok {
		t.Errorf("detail content must serialize as detailContent: %s", encoded)
	}
}

func TestLoginTokenFromHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer header-access")
		w.Header().Set("Refresh-Token", "header-refresh")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":"OK","message":"login successful","data":null}`)
	}))
	defer srv.Close()

	client := NewUserClient(testClient(t, srv.URL, ""))
	session, err := client.Login(context.Background(), ports.LoginRequest{Email: "u@11job.site", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.AccessToken != "header-access" || session.RefreshToken != "header-refresh" {
		t.Errorf("tokens not taken from headers: %+v", session)
	}
	if session.Email != "u@11job.site" {
		t.Errorf("email not carried into session: %+v", session)
	}
}

func TestLoginTokenFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":"OK","message":"ok","data":{"accessToken":"body-access","refreshToken":"body-refresh"}}`)
	}))
	defer srv.Close()

	client := NewUserClient(testClient(t, srv.URL, ""))
	session, err := client.Login(context.Background(), ports.LoginRequest{Email: "u@11job.site", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.AccessToken != "body-access" || session.RefreshToken != "body-refresh" {
		t.Errorf("tokens not taken from body: %+v", session)
	}
}

func TestJobSearchPaging(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"code":"OK","message":"ok","data":{"content":[{"jobId":1,"companyName":"acme","title":"backend developer"}],"totalElements":41,"totalPages":3,"size":20,"number":1,"first":false,"last":false}}`)
	}))
	defer srv.Close()

	client := NewJobClient(testClient(t, srv.URL, ""))
	page, err := client.Search(context.Background(), ports.JobFilter{Page: 1, Size: 20, Keyword: "backend"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if page.TotalElements != 41 || len(page.Content) != 1 {
		t.Errorf("page wrong: %+v", page)
	}
	if page.First || page.Last {
		t.Errorf("page flags wrong: %+v", page)
	}

	params, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("bad query %q: %v", gotQuery, err)
	}
	if params.Get("page") != "1" || params.Get("size") != "20" || params.Get("keyword") != "backend" {
		t.Errorf("query params wrong: %v", params)
	}
}
