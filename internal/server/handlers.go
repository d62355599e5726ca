package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ecocubano/internal/analysis"
	"ecocubano/internal/core"
	"ecocubano/internal/dataset"
	"ecocubano/internal/temporal"
)

// errorPayload accompanies analysis responses when the load failed; the data
// fields are empty rather than absent so charts render as "no data".
type errorPayload struct {
	Error string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// view loads the dataset and applies the common query filters. A load error
// yields an empty view plus the user-visible message; analysis endpoints
// still answer 200 with empty data.
func (s *Server) view(r *http.Request) (*dataset.Dataset, analysis.Options, string) {
	opts := s.optionsFromQuery(r)

	ds, err := s.store.Dataset()
	if err != nil {
		return dataset.New(nil), opts, err.Error()
	}
	return ds.FilterCategory(opts.Category).FilterDateRange(opts.Dates), opts, ""
}

func (s *Server) optionsFromQuery(r *http.Request) analysis.Options {
	q := r.URL.Query()

	opts := analysis.Options{
		Category:      q.Get("category"),
		TopN:          analysis.ClampTopN(atoi(q.Get("top_n"))),
		Keywords:      analysis.ParseKeywords(q.Get("keywords")),
		ShowWordCloud: q.Get("wordcloud") != "false",
		ShowSentiment: q.Get("sentiment") != "false",
	}
	if len(opts.Keywords) == 0 {
		opts.Keywords = analysis.ParseKeywords(s.defaults.Keywords)
	}
	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		opts.Dates.From = &from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		opts.Dates.To = &to
	}
	return opts
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	opts := s.optionsFromQuery(r)
	ds, err := s.store.Dataset()
	if err != nil {
		s.respondJSON(w, http.StatusOK, map[string]any{
			"error":  err.Error(),
			"report": s.pipeline.Run(dataset.New(nil), opts),
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"report": s.pipeline.Run(ds, opts)})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{"overview": analysis.BuildOverview(ds), "error": errMsg})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	counts := ds.CountBy(func(c core.Comment) string { return c.Category })
	s.respondJSON(w, http.StatusOK, map[string]any{"categories": dataset.SortCounts(counts), "error": errMsg})
}

func (s *Server) handleTopNews(w http.ResponseWriter, r *http.Request) {
	ds, opts, errMsg := s.view(r)
	counts := ds.CountBy(func(c core.Comment) string { return c.NewsTitle })
	top := dataset.TopN(dataset.SortCounts(counts), opts.TopN)
	s.respondJSON(w, http.StatusOK, map[string]any{"news": top, "error": errMsg})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{"daily": temporal.DailyCounts(ds), "error": errMsg})
}

func (s *Server) handlePeaks(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	peaks := temporal.DetectPeaks(temporal.DailyCounts(ds))
	s.respondJSON(w, http.StatusOK, map[string]any{"peaks": peaks, "error": errMsg})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	ds, opts, errMsg := s.view(r)
	evolution := temporal.KeywordEvolution(ds, opts.Keywords)
	s.respondJSON(w, http.StatusOK, map[string]any{"keywords": evolution, "error": errMsg})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	if err := s.store.Replace(r.Body); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "replaced"})
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
