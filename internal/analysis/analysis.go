// Package analysis is the single configurable pipeline behind every dashboard
// variant: one Options struct carries the sidebar state, one Run pass derives
// every section from the filtered view. There is exactly one code path, so
// panel variants cannot drift apart.
package analysis

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ecocubano/internal/calendar"
	"ecocubano/internal/core"
	"ecocubano/internal/dataset"
	"ecocubano/internal/narrative"
	"ecocubano/internal/ranking"
	"ecocubano/internal/sentiment"
	"ecocubano/internal/temporal"
	"ecocubano/internal/wordcloud"
)

// Top-N bounds, matching the dashboard slider.
const (
	MinTopN     = 3
	MaxTopN     = 10
	DefaultTopN = 5
)

// Options is the explicit configuration surface a UI passes into the
// pipeline. It replaces implicit widget state: the same Options always
// produce the same Report over the same dataset.
type Options struct {
	Category      string         `json:"category"`       // "" / "Todas" / "all" = no filter
	Dates         core.DateRange `json:"dates"`          // Inclusive day range, open when nil
	Keywords      []string       `json:"keywords"`       // For the keyword evolution section
	TopN          int            `json:"top_n"`          // Clamped to [MinTopN, MaxTopN]
	ShowWordCloud bool           `json:"show_wordcloud"` // Toggle the word cloud section
	ShowSentiment bool           `json:"show_sentiment"` // Toggle the sentiment section
}

// ParseKeywords splits the sidebar's comma-separated keyword string into
// trimmed, non-empty keywords.
func ParseKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// ClampTopN forces a top-N value into the slider bounds, mapping zero to the
// default.
func ClampTopN(n int) int {
	if n == 0 {
		return DefaultTopN
	}
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// Overview is the headline metric block of a report.
type Overview struct {
	TotalComments int        `json:"total_comments"`
	UniqueAuthors int        `json:"unique_authors"`
	UniqueNews    int        `json:"unique_news"`
	FirstDate     *time.Time `json:"first_date"` // nil when no record has a date
	LastDate      *time.Time `json:"last_date"`
}

// Report is the full pipeline output: pure data, ready for any presentation
// layer to render. Sections excluded by toggles are zero-valued.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Options     Options   `json:"options"`

	Overview       Overview                            `json:"overview"`
	Categories     []dataset.KeyCount                  `json:"categories"`
	TopNews        []dataset.KeyCount                  `json:"top_news"`
	NewsSummaries  []ranking.NewsSummary               `json:"news_summaries"`
	Daily          []temporal.DayCount                 `json:"daily"`
	Weekdays       []temporal.WeekdayCount             `json:"weekdays"`
	Peaks          []temporal.Peak                     `json:"peaks"`
	Keywords       map[string][]temporal.KeywordPoint  `json:"keywords"`
	Narratives     map[narrative.Label]int             `json:"narratives"`
	EmotionRadar   []narrative.EmotionCount            `json:"emotion_radar"`
	Slogans        []narrative.SloganStat              `json:"slogans"`
	SloganSummary  narrative.SloganSummary             `json:"slogan_summary"`
	Sentiment      *sentiment.Distribution             `json:"sentiment,omitempty"`
	WordCloud      *wordcloud.Result                   `json:"word_cloud,omitempty"`
	Violence       []ranking.ViolenceCount             `json:"violence"`
	Duplicates     []ranking.DuplicateGroup            `json:"duplicates"`
	KeyDays        []ranking.KeyDay                    `json:"key_days"`
	NewsRoles      []ranking.NewsRole                  `json:"news_roles"`
}

// Pipeline bundles the classifiers and localization a report run needs.
type Pipeline struct {
	narrative *narrative.Classifier
	sentiment *sentiment.Analyzer
	localizer *calendar.Localizer
}

// New creates a pipeline with default classifiers and the given locale.
func New(locale string) *Pipeline {
	return &Pipeline{
		narrative: narrative.NewClassifier(),
		sentiment: sentiment.NewAnalyzer(nil),
		localizer: calendar.NewLocalizer(locale),
	}
}

// NewWith creates a pipeline with explicit collaborators, for callers that
// swap the polarity scorer or stance vocabulary.
func NewWith(cls *narrative.Classifier, sent *sentiment.Analyzer, loc *calendar.Localizer) *Pipeline {
	return &Pipeline{narrative: cls, sentiment: sent, localizer: loc}
}

// Narrative returns the pipeline's stance classifier.
func (p *Pipeline) Narrative() *narrative.Classifier { return p.narrative }

// Sentiment returns the pipeline's sentiment analyzer.
func (p *Pipeline) Sentiment() *sentiment.Analyzer { return p.sentiment }

// Localizer returns the pipeline's calendar localizer.
func (p *Pipeline) Localizer() *calendar.Localizer { return p.localizer }

// Run filters the dataset by the options and computes every enabled section.
// The input dataset is never modified; an empty view produces an empty but
// fully-formed report.
func (p *Pipeline) Run(ds *dataset.Dataset, opts Options) *Report {
	opts.TopN = ClampTopN(opts.TopN)
	view := ds.FilterCategory(opts.Category).FilterDateRange(opts.Dates)

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Options:     opts,
	}

	texts := dataset.Derive(view, func(c core.Comment) string { return c.Content })

	report.Overview = BuildOverview(view)
	report.Categories = ranking.TopCategories(view, 0)
	report.TopNews = ranking.TopNews(view, opts.TopN)
	report.NewsSummaries = ranking.NewsSummaries(view, opts.TopN)
	report.Daily = temporal.DailyCounts(view)
	report.Weekdays = temporal.WeekdayCounts(view, p.localizer)
	report.Peaks = temporal.DetectPeaks(report.Daily)
	report.Keywords = temporal.KeywordEvolution(view, opts.Keywords)
	report.Narratives = p.narrative.Distribution(texts)
	report.EmotionRadar = narrative.EmotionRadar(texts)
	report.Slogans, report.SloganSummary = narrative.SloganFrequency(view, nil)
	report.Violence = ranking.ViolenceByCategory(view, nil)
	report.Duplicates = ranking.DuplicateComments(view, opts.TopN)
	report.KeyDays = ranking.KeyDays(view, p.narrative)
	report.NewsRoles = ranking.NewsRoles(view, p.narrative)

	if opts.ShowSentiment {
		dist := p.sentiment.Distribution(view)
		report.Sentiment = &dist
	}
	if opts.ShowWordCloud {
		cloud := wordcloud.Analyze(texts, 0)
		report.WordCloud = &cloud
	}

	return report
}

// Blurb delegates to the blurb generator with the pipeline's classifier.
func (p *Pipeline) Blurb(ds *dataset.Dataset, newsTitle string) string {
	return ranking.SummaryBlurb(ds, newsTitle, p.narrative)
}

// BuildOverview computes the headline metrics for a view.
func BuildOverview(ds *dataset.Dataset) Overview {
	o := Overview{TotalComments: ds.Len()}

	authors := make(map[string]bool)
	news := make(map[string]bool)
	for _, r := range ds.Records() {
		authors[r.Author] = true
		news[r.NewsTitle] = true
		if !r.HasDate() {
			continue
		}
		day := r.Day()
		if o.FirstDate == nil || day.Before(*o.FirstDate) {
			d := day
			o.FirstDate = &d
		}
		if o.LastDate == nil || day.After(*o.LastDate) {
			d := day
			o.LastDate = &d
		}
	}
	o.UniqueAuthors = len(authors)
	o.UniqueNews = len(news)
	return o
}
