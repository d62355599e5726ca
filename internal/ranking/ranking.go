// Package ranking builds the ranked tables: most-commented categories and
// news, news summaries, repeated comments, key days and the blurb generator.
// All ties break by encounter order via stable sorts, never map iteration.
package ranking

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ecocubano/internal/core"
	"ecocubano/internal/dataset"
	"ecocubano/internal/narrative"
)

// TopCategories returns the categories with the most comments, at most topN
// rows, ties kept in first-seen order.
func TopCategories(ds *dataset.Dataset, topN int) []dataset.KeyCount {
	counts := ds.CountBy(func(c core.Comment) string { return c.Category })
	return dataset.TopN(dataset.SortCounts(counts), topN)
}

// TopNews returns the news items with the most comments, at most topN rows.
func TopNews(ds *dataset.Dataset, topN int) []dataset.KeyCount {
	counts := ds.CountBy(func(c core.Comment) string { return c.NewsTitle })
	return dataset.TopN(dataset.SortCounts(counts), topN)
}

// NewsSummary is one row of the most-commented-news table.
type NewsSummary struct {
	NewsTitle        string     `json:"news_title"`
	FirstCommentDate *time.Time `json:"first_comment_date"` // nil when no comment has a date
	TotalComments    int        `json:"total_comments"`
}

// NewsSummaries groups comments per news item and reports each item's first
// comment date and total, sorted descending by total, truncated to topN.
// Undated comments count toward the total but not toward the first date.
func NewsSummaries(ds *dataset.Dataset, topN int) []NewsSummary {
	groups := ds.GroupBy(func(c core.Comment) string { return c.NewsTitle })

	out := make([]NewsSummary, len(groups))
	for i, g := range groups {
		row := NewsSummary{NewsTitle: g.Key, TotalComments: len(g.Records)}
		for _, r := range g.Records {
			if !r.HasDate() {
				continue
			}
			day := r.Day()
			if row.FirstCommentDate == nil || day.Before(*row.FirstCommentDate) {
				row.FirstCommentDate = &day
			}
		}
		out[i] = row
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalComments > out[j].TotalComments })
	if topN > 0 && topN < len(out) {
		out = out[:topN]
	}
	return out
}

// DuplicateGroup is a set of near-identical comments keyed by lowercased text.
type DuplicateGroup struct {
	Content     string `json:"content"`     // Lowercased dedup key
	Repetitions int    `json:"repetitions"` // Always >= 2
}

// DuplicateComments groups comments by lowercased content, keeps only groups
// with two or more members, sorts descending by size and truncates to topN.
// Authors and dates are ignored: identical lowercased text is a duplicate.
func DuplicateComments(ds *dataset.Dataset, topN int) []DuplicateGroup {
	groups := ds.GroupBy(func(c core.Comment) string { return strings.ToLower(c.Content) })

	var out []DuplicateGroup
	for _, g := range groups {
		if len(g.Records) < 2 {
			continue
		}
		out = append(out, DuplicateGroup{Content: g.Key, Repetitions: len(g.Records)})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Repetitions > out[j].Repetitions })
	if topN > 0 && topN < len(out) {
		out = out[:topN]
	}
	return out
}

// ViolenceCount is the violent-language total for one category.
type ViolenceCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ViolenceByCategory sums violence-term occurrences per category, in
// first-seen category order. A nil term list selects the default vocabulary.
func ViolenceByCategory(ds *dataset.Dataset, terms []string) []ViolenceCount {
	groups := ds.GroupBy(func(c core.Comment) string { return c.Category })
	out := make([]ViolenceCount, len(groups))
	for i, g := range groups {
		total := 0
		for _, r := range g.Records {
			total += narrative.CountViolenceTerms(r.Content, terms)
		}
		out[i] = ViolenceCount{Category: g.Key, Count: total}
	}
	return out
}

// KeyDay is one day's activity with its dominant narrative.
type KeyDay struct {
	Date          time.Time       `json:"date"`
	TotalComments int             `json:"total_comments"`
	Dominant      narrative.Label `json:"dominant_narrative"`
}

// KeyDays ranks dated days by activity, descending, annotating each with the
// majority narrative of its comments. Undated comments are excluded.
func KeyDays(ds *dataset.Dataset, cls *narrative.Classifier) []KeyDay {
	dated := ds.Filter(func(c core.Comment) bool { return c.HasDate() })
	groups := dated.GroupBy(func(c core.Comment) string {
		return c.Day().Format("2006-01-02")
	})

	out := make([]KeyDay, len(groups))
	for i, g := range groups {
		day, _ := time.Parse("2006-01-02", g.Key)
		texts := make([]string, len(g.Records))
		for j, r := range g.Records {
			texts[j] = r.Content
		}
		out[i] = KeyDay{Date: day, TotalComments: len(g.Records), Dominant: cls.DominantLabel(texts)}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalComments > out[j].TotalComments })
	return out
}

// NewsRole casts a news item by the majority stance of its comments:
// PRO items play the hero, ANTI the villain, NEUTRO the antihero.
type NewsRole struct {
	NewsTitle     string `json:"news_title"`
	TotalComments int    `json:"total_comments"`
	Role          string `json:"role"`
}

// Role names assigned per dominant narrative.
const (
	RoleHero     = "Héroe"
	RoleVillain  = "Villano"
	RoleAntihero = "Antihéroe"
)

// NewsRoles classifies every news item, sorted descending by comment count.
func NewsRoles(ds *dataset.Dataset, cls *narrative.Classifier) []NewsRole {
	groups := ds.GroupBy(func(c core.Comment) string { return c.NewsTitle })

	out := make([]NewsRole, len(groups))
	for i, g := range groups {
		texts := make([]string, len(g.Records))
		for j, r := range g.Records {
			texts[j] = r.Content
		}

		role := RoleAntihero
		switch cls.DominantLabel(texts) {
		case narrative.LabelPro:
			role = RoleHero
		case narrative.LabelAnti:
			role = RoleVillain
		}
		out[i] = NewsRole{NewsTitle: g.Key, TotalComments: len(g.Records), Role: role}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalComments > out[j].TotalComments })
	return out
}

// Markers appended to a blurb per dominant narrative.
var blurbMarkers = map[narrative.Label]string{
	narrative.LabelPro:    "🚩",
	narrative.LabelAnti:   "💢",
	narrative.LabelNeutro: "➖",
}

// SummaryBlurb composes the tweet-style summary of one news item: its longest
// comment as the representative quote (first encountered on ties), the
// dominant narrative with its marker, and the comment total. Title and quote
// are truncated to 50 and 100 runes. An unknown title yields "".
func SummaryBlurb(ds *dataset.Dataset, newsTitle string, cls *narrative.Classifier) string {
	item := ds.Filter(func(c core.Comment) bool { return c.NewsTitle == newsTitle })
	if item.Len() == 0 {
		return ""
	}

	quote := ""
	best := -1
	texts := make([]string, 0, item.Len())
	for _, r := range item.Records() {
		texts = append(texts, r.Content)
		if n := r.ContentLength(); n > best {
			best = n
			quote = r.Content
		}
	}
	dominant := cls.DominantLabel(texts)

	return fmt.Sprintf("🗞️ **%s...**\n💬 *\"%s...\"*\n🔥 **Narrativa dominante**: %s %s\n📊 **Total comentarios**: %d",
		truncateRunes(newsTitle, 50), truncateRunes(quote, 100), dominant, blurbMarkers[dominant], item.Len())
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
