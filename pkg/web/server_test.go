package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/huihuibuhui227-svg/JingXin/pkg/report"
	"github.com/huihuibuhui227-svg/JingXin/pkg/session"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
	"github.com/huihuibuhui227-svg/JingXin/pkg/voice"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := report.NewJSONStore(filepath.Join(t.TempDir(), "reports.json"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return NewServer("0", session.NewRegistry(session.DefaultConfig()), store)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, "/api/sessions", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d, want 201", resp.StatusCode)
	}
	var out struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, resp, &out)
	if out.SessionID == "" {
		t.Fatal("create session returned no id")
	}
	return out.SessionID
}

func sadFrame() signal.Frame {
	return signal.Frame{
		Face: signal.Activations{signal.Frown: 0.3, signal.MouthDown: 0.2},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out map[string]any
	decodeBody(t, resp, &out)
	if out["status"] != "ok" {
		t.Fatalf("health = %v, want status ok", out)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	resp := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/frames", sadFrame())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("frame status = %d, want 200", resp.StatusCode)
	}
	var rec session.TickRecord
	decodeBody(t, resp, &rec)
	if rec.Tick != 1 || !rec.Face.Valid {
		t.Fatalf("record = tick %d valid %v, want tick 1 with face", rec.Tick, rec.Face.Valid)
	}
	if rec.Fused.Overall != 80 {
		t.Fatalf("fused overall = %v, want 80", rec.Fused.Overall)
	}

	resp = doJSON(t, s, http.MethodGet, "/api/sessions/"+id+"/state", nil)
	var snap session.TickRecord
	decodeBody(t, resp, &snap)
	if snap.Tick != 1 {
		t.Fatalf("snapshot tick = %d, want 1", snap.Tick)
	}

	resp = doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/utterances", voice.Features{
		DurationSeconds: 10,
		PitchStd:        20,
		EnergyMean:      0.5,
		SpeechRatio:     0.8,
	})
	var assessment voice.Assessment
	decodeBody(t, resp, &assessment)
	if !assessment.Valid {
		t.Fatalf("assessment = %+v, want valid", assessment)
	}

	resp = doJSON(t, s, http.MethodDelete, "/api/sessions/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("end session status = %d, want 200", resp.StatusCode)
	}
	var rep report.SessionReport
	decodeBody(t, resp, &rep)
	if rep.ID != id || rep.Ticks != 1 || rep.Utterances != 1 {
		t.Fatalf("report = %+v, want id %s with 1 tick and 1 utterance", rep, id)
	}

	resp = doJSON(t, s, http.MethodGet, "/api/reports", nil)
	var reports []report.SessionReport
	decodeBody(t, resp, &reports)
	if len(reports) != 1 || reports[0].ID != id {
		t.Fatalf("reports = %+v, want the one persisted report", reports)
	}

	resp = doJSON(t, s, http.MethodDelete, "/api/sessions/"+id, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestFrameValidationErrors(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	resp := doJSON(t, s, http.MethodPost, "/api/sessions/"+id+"/frames", map[string]any{
		"face": map[string]float64{"bogus": 1},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown channel status = %d, want 400", resp.StatusCode)
	}
	var out map[string]any
	decodeBody(t, resp, &out)
	if msg, ok := out["error"].(string); !ok || msg == "" {
		t.Fatal("validation error body should name the problem")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/frames",
		bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("broken body status = %d, want 400", resp.StatusCode)
	}

	if got := s.registry; got.Len() != 1 {
		t.Fatalf("sessions = %d after rejected frames, want 1", got.Len())
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/sessions/nope/frames", sadFrame()},
		{http.MethodPost, "/api/sessions/nope/utterances", voice.Features{DurationSeconds: 1}},
		{http.MethodGet, "/api/sessions/nope/state", nil},
		{http.MethodDelete, "/api/sessions/nope", nil},
	}
	for _, tc := range paths {
		resp := doJSON(t, s, tc.method, tc.path, tc.body)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s %s status = %d, want 404", tc.method, tc.path, resp.StatusCode)
		}
	}
}
