package ingest

import (
	"errors"
	"testing"
)

const validExport = `{
  "analisis_comentarios": {
    "comentarios": [
      {
        "titulo_noticia": "X",
        "categoria": "politica",
        "comentarios": [
          {"fecha": "2024-07-29", "contenido": "bloqueo y revolución", "usuario": "ana"},
          {"fecha": "2024-07-29", "contenido": "protesta por crisis"}
        ]
      },
      {
        "titulo_noticia": "Y",
        "categoria": "Deporte",
        "comentarios": [
          {"contenido": "sin fecha este comentario", "autor": "luis"}
        ]
      },
      {
        "titulo_noticia": "Z",
        "categoria": "politica"
      }
    ]
  }
}`

func TestNormalize_OneRecordPerComment(t *testing.T) {
	records, err := Normalize([]byte(validExport), Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Encounter order within each news item is preserved
	if records[0].Content != "bloqueo y revolución" || records[1].Content != "protesta por crisis" {
		t.Errorf("records out of encounter order: %q, %q", records[0].Content, records[1].Content)
	}
}

func TestNormalize_FieldDefaults(t *testing.T) {
	records, err := Normalize([]byte(validExport), Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if records[0].Author != "ana" {
		t.Errorf("expected usuario field, got %q", records[0].Author)
	}
	if records[1].Author != DefaultAuthor {
		t.Errorf("missing author should default to %q, got %q", DefaultAuthor, records[1].Author)
	}
	if records[2].Author != "luis" {
		t.Errorf("autor fallback not applied, got %q", records[2].Author)
	}
}

func TestNormalize_MissingDateKeptAsNil(t *testing.T) {
	records, err := Normalize([]byte(validExport), Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if records[2].HasDate() {
		t.Error("comment without fecha should have nil date in the general pipeline")
	}
	if !records[0].HasDate() {
		t.Error("comment with valid fecha should have a date")
	}
}

func TestNormalize_StrictDatesDropsUndated(t *testing.T) {
	records, err := Normalize([]byte(validExport), Options{StrictDates: true})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("strict pipeline should drop the undated comment, got %d records", len(records))
	}
	for _, r := range records {
		if !r.HasDate() {
			t.Error("strict pipeline yielded an undated record")
		}
	}
}

func TestNormalize_CategoryFilterCaseInsensitive(t *testing.T) {
	records, err := Normalize([]byte(validExport), Options{Category: "POLITICA"})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 politics records, got %d", len(records))
	}
	records, err = Normalize([]byte(validExport), Options{Category: "deporte"})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 deporte record, got %d", len(records))
	}
}

func TestNormalize_SkipsNewsWithoutCommentList(t *testing.T) {
	records, err := Normalize([]byte(validExport), Options{Category: "politica"})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	for _, r := range records {
		if r.NewsTitle == "Z" {
			t.Error("news item without a comment list should be skipped entirely")
		}
	}
}

func TestNormalize_NonStringFieldsDefault(t *testing.T) {
	raw := `{"analisis_comentarios":{"comentarios":[
		{"titulo_noticia": 42, "categoria": null, "comentarios":[
			{"fecha": 20240729, "contenido": 7, "usuario": null}
		]}
	]}}`

	records, err := Normalize([]byte(raw), Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.NewsTitle != DefaultTitle {
		t.Errorf("non-string title should default to %q, got %q", DefaultTitle, r.NewsTitle)
	}
	if r.Content != "" {
		t.Errorf("non-string content should default to empty, got %q", r.Content)
	}
	if r.Author != DefaultAuthor {
		t.Errorf("null author should default to %q, got %q", DefaultAuthor, r.Author)
	}
	if r.HasDate() {
		t.Error("numeric fecha should yield a nil date")
	}
}

func TestNormalize_ParseError(t *testing.T) {
	_, err := Normalize([]byte(`{not json`), Options{})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestNormalize_SchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing top-level key", `{"otra_cosa": {}}`},
		{"missing comentarios key", `{"analisis_comentarios": {}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := Normalize([]byte(tc.raw), Options{})
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if len(records) != 0 {
				t.Errorf("schema error should yield empty result, got %d records", len(records))
			}
		})
	}
}

func TestNormalize_EmptyCommentList(t *testing.T) {
	raw := `{"analisis_comentarios":{"comentarios":[
		{"titulo_noticia":"A","categoria":"politica","comentarios":[]}
	]}}`
	records, err := Normalize([]byte(raw), Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("empty comment list should yield no records, got %d", len(records))
	}
}

func TestNormalize_TolerantDateFormats(t *testing.T) {
	raw := `{"analisis_comentarios":{"comentarios":[
		{"titulo_noticia":"A","categoria":"politica","comentarios":[
			{"fecha":"2024/07/29","contenido":"slash format"},
			{"fecha":"no es fecha","contenido":"garbage date"}
		]}
	]}}`

	records, err := Normalize([]byte(raw), Options{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both records kept, got %d", len(records))
	}
	if !records[0].HasDate() {
		t.Error("general pipeline should parse 2024/07/29 tolerantly")
	}
	if records[1].HasDate() {
		t.Error("unparseable date should become nil, not invented")
	}

	// The strict pipeline accepts only exact YYYY-MM-DD
	strict, err := Normalize([]byte(raw), Options{StrictDates: true})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(strict) != 0 {
		t.Errorf("strict pipeline should drop both records, got %d", len(strict))
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	ds, err := LoadFile("does-not-exist.json", Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if ds == nil || ds.Len() != 0 {
		t.Error("missing file should still yield an empty, usable dataset")
	}
}
