// Package ingest parses the nested comment export and flattens it into a
// uniform record sequence. Field-level anomalies are absorbed via defaults;
// only broken JSON or a missing top-level structure is surfaced as an error.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"ecocubano/internal/core"
	"ecocubano/internal/dataset"
)

// DefaultAuthor is substituted when a comment has no usuario/autor field.
const DefaultAuthor = "Anónimo"

// DefaultTitle is substituted when a news item has no title.
const DefaultTitle = "Sin título"

// ParseError wraps invalid JSON syntax in the source document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("invalid JSON: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a document whose top-level structure is missing the
// required analisis_comentarios.comentarios keys.
type SchemaError struct {
	Missing string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid export structure: missing %q", e.Missing)
}

// Options controls which pipeline variant runs.
type Options struct {
	// Category restricts ingestion to a single news category, compared
	// case-insensitively. Empty means all categories.
	Category string

	// StrictDates selects the politics-pipeline date policy: comments whose
	// fecha is missing or not an exact YYYY-MM-DD value are dropped. When
	// false, dates are parsed tolerantly and unparseable ones become nil
	// while the comment itself is kept.
	StrictDates bool
}

// exportFile mirrors the required top-level shape. Pointers distinguish an
// absent key from an empty one so schema errors can be reported precisely.
type exportFile struct {
	Analysis *exportAnalysis `json:"analisis_comentarios"`
}

type exportAnalysis struct {
	News *[]exportNews `json:"comentarios"`
}

// exportNews uses loose field types: real exports contain occasional numbers
// or nulls where strings are expected, and those must default, not fail.
type exportNews struct {
	Title    any              `json:"titulo_noticia"`
	Category any              `json:"categoria"`
	Comments *[]exportComment `json:"comentarios"`
}

type exportComment struct {
	Date    any `json:"fecha"`
	Content any `json:"contenido"`
	User    any `json:"usuario"`
	Author  any `json:"autor"`
}

// Normalize flattens a raw export into comment records, one per leaf comment
// object, preserving encounter order within each news item. A *ParseError or
// *SchemaError is returned together with an empty (never nil-dereferencing)
// result so callers can show a message and keep rendering.
func Normalize(raw []byte, opts Options) ([]core.Comment, error) {
	var doc exportFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Analysis == nil {
		return nil, &SchemaError{Missing: "analisis_comentarios"}
	}
	if doc.Analysis.News == nil {
		return nil, &SchemaError{Missing: "analisis_comentarios.comentarios"}
	}

	wantCategory := strings.ToLower(strings.TrimSpace(opts.Category))

	var records []core.Comment
	for _, news := range *doc.Analysis.News {
		// A news item without a comment list is skipped entirely,
		// a present-but-empty list simply contributes no rows.
		if news.Comments == nil {
			continue
		}

		title := asString(news.Title, DefaultTitle)
		category := asString(news.Category, "")
		if wantCategory != "" && strings.ToLower(category) != wantCategory {
			continue
		}

		for _, c := range *news.Comments {
			date, ok := parseDate(c.Date, opts.StrictDates)
			if opts.StrictDates && !ok {
				continue
			}

			author := asString(c.User, "")
			if author == "" {
				author = asString(c.Author, DefaultAuthor)
			}

			records = append(records, core.Comment{
				NewsTitle: title,
				Category:  category,
				Date:      date,
				Content:   asString(c.Content, ""),
				Author:    author,
			})
		}
	}

	return records, nil
}

// LoadFile reads and normalizes an export file into a dataset. Missing files
// and broken documents surface as errors alongside an empty dataset.
func LoadFile(path string, opts Options) (*dataset.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return dataset.New(nil), fmt.Errorf("failed to read %s: %w", path, err)
	}
	records, err := Normalize(raw, opts)
	if err != nil {
		return dataset.New(nil), err
	}
	return dataset.New(records), nil
}

// parseDate extracts a comment date. In strict mode only exact YYYY-MM-DD
// strings count; otherwise any recognizable date format is accepted and
// failures yield nil without invalidating the comment.
func parseDate(v any, strict bool) (*time.Time, bool) {
	s := strings.TrimSpace(asString(v, ""))
	if s == "" {
		return nil, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		t = core.TruncateDay(t)
		return &t, true
	}
	if strict {
		return nil, false
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		t = core.TruncateDay(t)
		return &t, true
	}
	return nil, false
}

// asString coerces a loose JSON value to a string, falling back to def for
// nulls, absent fields, and non-string values.
func asString(v any, def string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}
