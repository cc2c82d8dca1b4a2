package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/internal/domain"
	"server/internal/middleware"
)

func TestSelfReportCreate(t *testing.T) {
	wf := &fakeWorkflow{rec: sampleRecord()}
	app, _ := newTestApp(wf)
	router := testRouter(app)

	body := `{"activity_date":"2024-06-01","hours":3,"activity_type":"tutoring","description":"after-school math tutoring"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/hours", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "vol-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if wf.lastIn.VolunteerID != "vol-1" {
		t.Fatalf("volunteer id not taken from identity header: %+v", wf.lastIn)
	}
	if !wf.lastIn.ActivityDate.Equal(sampleRecord().ActivityDate) {
		t.Fatalf("activity date not parsed: %v", wf.lastIn.ActivityDate)
	}

	var view selfReportView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.ID != "rec-1" || view.Status != "unvalidated" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestSelfReportCreateRequiresIdentity(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{})
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodPost, "/v1/hours", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rr.Code)
	}
}

func TestSelfReportCreateRejectsBadDate(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{rec: sampleRecord()})
	router := testRouter(app)

	body := `{"activity_date":"06/01/2024","hours":3,"activity_type":"tutoring","description":"after-school math tutoring"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/hours", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "vol-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400: %s", rr.Code, rr.Body.String())
	}
}

func TestSelfReportDeleteImmutableConflicts(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{err: domain.ErrRecordImmutable})
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodDelete, "/v1/hours/rec-1", nil)
	req.Header.Set(middleware.HeaderUserID, "vol-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("got %d, want 409", rr.Code)
	}
}

func TestSelfReportGetNotFound(t *testing.T) {
	app, _ := newTestApp(&fakeWorkflow{err: domain.ErrNotFound})
	router := testRouter(app)

	req := httptest.NewRequest(http.MethodGet, "/v1/hours/missing", nil)
	req.Header.Set(middleware.HeaderUserID, "vol-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}
