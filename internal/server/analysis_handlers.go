package server

import (
	"net/http"

	"ecocubano/internal/core"
	"ecocubano/internal/dataset"
	"ecocubano/internal/narrative"
	"ecocubano/internal/ranking"
	"ecocubano/internal/temporal"
	"ecocubano/internal/wordcloud"
)

func (s *Server) handleNewsSummaries(w http.ResponseWriter, r *http.Request) {
	ds, opts, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"summaries": ranking.NewsSummaries(ds, opts.TopN),
		"error":     errMsg,
	})
}

func (s *Server) handleBlurb(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		s.respondJSON(w, http.StatusBadRequest, errorPayload{Error: "missing title parameter"})
		return
	}
	ds, _, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"blurb": s.pipeline.Blurb(ds, title),
		"error": errMsg,
	})
}

func (s *Server) handleWeekdays(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"weekdays": temporal.WeekdayCounts(ds, s.pipeline.Localizer()),
		"error":    errMsg,
	})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"sentiment": s.pipeline.Sentiment().Distribution(ds),
		"error":     errMsg,
	})
}

func (s *Server) handleNarratives(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	texts := dataset.Derive(ds, func(c core.Comment) string { return c.Content })
	s.respondJSON(w, http.StatusOK, map[string]any{
		"narratives": s.pipeline.Narrative().Distribution(texts),
		"emotions":   narrative.EmotionRadar(texts),
		"error":      errMsg,
	})
}

func (s *Server) handleSlogans(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	stats, summary := narrative.SloganFrequency(ds, nil)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"slogans": stats,
		"summary": summary,
		"error":   errMsg,
	})
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	ds, opts, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"duplicates": ranking.DuplicateComments(ds, opts.TopN),
		"error":      errMsg,
	})
}

func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	texts := dataset.Derive(ds, func(c core.Comment) string { return c.Content })
	s.respondJSON(w, http.StatusOK, map[string]any{
		"word_cloud": wordcloud.Analyze(texts, 0),
		"error":      errMsg,
	})
}

func (s *Server) handleViolence(w http.ResponseWriter, r *http.Request) {
	ds, _, errMsg := s.view(r)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"violence": ranking.ViolenceByCategory(ds, nil),
		"error":    errMsg,
	})
}
