package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ecocubano/internal/analysis"
	"ecocubano/internal/config"
	"ecocubano/internal/ingest"
	"ecocubano/internal/store"
)

const testExport = `{
	"analisis_comentarios": {
		"comentarios": [
			{
				"titulo_noticia": "Bloqueo y economía",
				"categoria": "politica",
				"comentarios": [
					{"fecha": "2024-07-29", "contenido": "el bloqueo afecta la economía", "usuario": "ana"},
					{"fecha": "2024-07-29", "contenido": "protesta por la crisis", "usuario": "luis"},
					{"fecha": "2024-07-30", "contenido": "viva la revolución", "usuario": "ana"}
				]
			},
			{
				"titulo_noticia": "Final del torneo",
				"categoria": "deporte",
				"comentarios": [
					{"fecha": "2024-07-30", "contenido": "gran partido", "usuario": "eva"}
				]
			}
		]
	}
}`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comentarios.json")
	if err := os.WriteFile(path, []byte(testExport), 0644); err != nil {
		t.Fatal(err)
	}
	st := store.New(path, ingest.Options{})
	srv := New(st, analysis.New("es"), config.Server{Host: "127.0.0.1", Port: 0}, config.Analysis{Keywords: "bloqueo", TopN: 5})
	return srv, path
}

func doGet(t *testing.T, srv *Server, url string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response for %s: %v", url, err)
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec, body := doGet(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestOverview(t *testing.T) {
	srv, _ := newTestServer(t)
	rec, body := doGet(t, srv, "/api/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	overview, ok := body["overview"].(map[string]any)
	if !ok {
		t.Fatalf("missing overview section: %v", body)
	}
	if overview["total_comments"].(float64) != 4 {
		t.Errorf("expected 4 comments, got %v", overview["total_comments"])
	}
	if overview["unique_authors"].(float64) != 3 {
		t.Errorf("expected 3 authors, got %v", overview["unique_authors"])
	}
}

func TestOverview_CategoryFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	_, body := doGet(t, srv, "/api/overview?category=deporte")
	overview := body["overview"].(map[string]any)
	if overview["total_comments"].(float64) != 1 {
		t.Errorf("expected 1 deporte comment, got %v", overview["total_comments"])
	}
}

func TestDaily_DateFilter(t *testing.T) {
	srv, _ := newTestServer(t)
	_, body := doGet(t, srv, "/api/daily?from=2024-07-30&to=2024-07-30")
	daily, ok := body["daily"].([]any)
	if !ok {
		t.Fatalf("missing daily section: %v", body)
	}
	if len(daily) != 1 {
		t.Fatalf("expected a single day, got %d", len(daily))
	}
	day := daily[0].(map[string]any)
	if day["count"].(float64) != 2 {
		t.Errorf("expected 2 comments on 2024-07-30, got %v", day["count"])
	}
}

func TestReport(t *testing.T) {
	srv, _ := newTestServer(t)
	rec, body := doGet(t, srv, "/api/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	report, ok := body["report"].(map[string]any)
	if !ok {
		t.Fatalf("missing report: %v", body)
	}
	if report["id"] == "" {
		t.Error("report should carry an ID")
	}
	weekdays := report["weekdays"].([]any)
	if len(weekdays) != 7 {
		t.Errorf("expected 7 weekday rows, got %d", len(weekdays))
	}
}

func TestNarratives(t *testing.T) {
	srv, _ := newTestServer(t)
	_, body := doGet(t, srv, "/api/narratives?category=politica")
	narratives := body["narratives"].(map[string]any)
	// "bloqueo" and "revolución" are PRO terms, "protesta"/"crisis" ANTI
	if narratives["PRO"].(float64) != 2 {
		t.Errorf("expected 2 PRO comments, got %v", narratives["PRO"])
	}
	if narratives["ANTI"].(float64) != 1 {
		t.Errorf("expected 1 ANTI comment, got %v", narratives["ANTI"])
	}
	if _, ok := body["emotions"]; !ok {
		t.Error("narratives response should include the emotion radar")
	}
}

func TestBlurb(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, _ := doGet(t, srv, "/api/news/blurb")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title should answer 400, got %d", rec.Code)
	}

	_, body := doGet(t, srv, "/api/news/blurb?title=Bloqueo+y+econom%C3%ADa")
	blurb, _ := body["blurb"].(string)
	if !strings.Contains(blurb, "Bloqueo y economía") {
		t.Errorf("blurb should mention the news title, got %q", blurb)
	}
}

func TestUpload(t *testing.T) {
	srv, path := newTestServer(t)

	replacement := `{
		"analisis_comentarios": {
			"comentarios": [
				{
					"titulo_noticia": "Nueva",
					"categoria": "politica",
					"comentarios": [
						{"fecha": "2024-08-01", "contenido": "solo uno", "usuario": "ana"}
					]
				}
			]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(replacement))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	_, body := doGet(t, srv, "/api/overview")
	overview := body["overview"].(map[string]any)
	if overview["total_comments"].(float64) != 1 {
		t.Errorf("expected the replacement dataset, got %v comments", overview["total_comments"])
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "Nueva") {
		t.Error("upload should rewrite the backing file")
	}
}

func TestUpload_RejectsBrokenDocument(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	_, body := doGet(t, srv, "/api/overview")
	overview := body["overview"].(map[string]any)
	if overview["total_comments"].(float64) != 4 {
		t.Errorf("broken upload must not change the dataset, got %v", overview["total_comments"])
	}
}

func TestMissingFileStillAnswers(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "nope.json"), ingest.Options{})
	srv := New(st, analysis.New("es"), config.Server{}, config.Analysis{})

	rec, body := doGet(t, srv, "/api/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("analysis endpoints answer 200 on load failure, got %d", rec.Code)
	}
	if body["error"] == "" || body["error"] == nil {
		t.Error("load failure should surface in the error field")
	}
	overview := body["overview"].(map[string]any)
	if overview["total_comments"].(float64) != 0 {
		t.Errorf("expected an empty view, got %v", overview["total_comments"])
	}
}
