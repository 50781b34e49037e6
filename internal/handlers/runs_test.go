package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"vacuum_packaging/internal/models"
	"vacuum_packaging/internal/service"
)

func TestRunHandlers(t *testing.T) {
	done := testRun("r1")
	done.Outcome = "SUCCESS"
	hist := &mockRunHistory{
		runs: []models.PackagingRun{testRun("r2"), done},
		run:  done,
	}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, RunHistory: hist})

	w := doJSON(r, http.MethodGet, "/api/v1/runs/?limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count int                   `json:"count"`
		Runs  []models.PackagingRun `json:"runs"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || out.Runs[0].ID != "r2" || hist.lastLimit != 10 {
		t.Fatalf("unexpected list: %+v (limit %d)", out, hist.lastLimit)
	}

	if w = doJSON(r, http.MethodGet, "/api/v1/runs/?limit=-1", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/runs/r1", "")
	if w.Code != http.StatusOK || hist.lastID != "r1" {
		t.Fatalf("get status=%d id=%q", w.Code, hist.lastID)
	}

	hist.err = service.ErrRunNotFound
	if w = doJSON(r, http.MethodGet, "/api/v1/runs/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	hist.err = errors.New("db down")
	if w = doJSON(r, http.MethodGet, "/api/v1/runs/r1", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w = doJSON(r, http.MethodGet, "/api/v1/runs/", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on list, got %d", w.Code)
	}
}
