package ranking

import (
	"strings"
	"testing"
	"time"

	"ecocubano/internal/core"
	"ecocubano/internal/dataset"
	"ecocubano/internal/narrative"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func sample() *dataset.Dataset {
	return dataset.New([]core.Comment{
		{NewsTitle: "A", Category: "politica", Date: day("2024-07-30"), Content: "bloqueo total", Author: "ana"},
		{NewsTitle: "A", Category: "politica", Date: day("2024-07-29"), Content: "Mismo Texto", Author: "luis"},
		{NewsTitle: "A", Category: "politica", Date: nil, Content: "mismo texto", Author: "eva"},
		{NewsTitle: "B", Category: "deporte", Date: day("2024-07-29"), Content: "crisis en el equipo", Author: "ana"},
		{NewsTitle: "C", Category: "cultura", Date: day("2024-07-31"), Content: "MISMO TEXTO", Author: "pepe"},
	})
}

func TestTopCategories(t *testing.T) {
	top := TopCategories(sample(), 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(top))
	}
	if top[0].Key != "politica" || top[0].Count != 3 {
		t.Errorf("expected (politica, 3) first, got %+v", top[0])
	}
	// deporte and cultura tie at 1: first-seen order wins
	if top[1].Key != "deporte" {
		t.Errorf("tie should keep encounter order, got %q", top[1].Key)
	}
}

func TestTopNews(t *testing.T) {
	top := TopNews(sample(), 10)
	if top[0].Key != "A" || top[0].Count != 3 {
		t.Errorf("expected (A, 3) first, got %+v", top[0])
	}
}

func TestNewsSummaries(t *testing.T) {
	summaries := NewsSummaries(sample(), 5)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 news items, got %d", len(summaries))
	}

	a := summaries[0]
	if a.NewsTitle != "A" || a.TotalComments != 3 {
		t.Fatalf("expected A with 3 comments first, got %+v", a)
	}
	// Min over dated comments only; the nil-date comment still counts in the total
	if a.FirstCommentDate == nil || a.FirstCommentDate.Format("2006-01-02") != "2024-07-29" {
		t.Errorf("first comment date should be the minimum dated comment, got %v", a.FirstCommentDate)
	}
}

func TestNewsSummaries_AllUndated(t *testing.T) {
	ds := dataset.New([]core.Comment{
		{NewsTitle: "X", Content: "uno"},
		{NewsTitle: "X", Content: "dos"},
	})
	summaries := NewsSummaries(ds, 5)
	if summaries[0].FirstCommentDate != nil {
		t.Errorf("no dated comments should leave the first date nil, got %v", summaries[0].FirstCommentDate)
	}
	if summaries[0].TotalComments != 2 {
		t.Errorf("undated comments still count, got %d", summaries[0].TotalComments)
	}
}

func TestDuplicateComments(t *testing.T) {
	dupes := DuplicateComments(sample(), 5)

	if len(dupes) != 1 {
		t.Fatalf("expected exactly one duplicate group, got %d", len(dupes))
	}
	if dupes[0].Content != "mismo texto" || dupes[0].Repetitions != 3 {
		t.Errorf("expected (mismo texto, 3), got %+v", dupes[0])
	}
}

func TestDuplicateComments_NeverBelowTwo(t *testing.T) {
	for _, g := range DuplicateComments(sample(), 10) {
		if g.Repetitions < 2 {
			t.Errorf("group %q has repetition count %d < 2", g.Content, g.Repetitions)
		}
	}
	if got := DuplicateComments(dataset.New(nil), 5); len(got) != 0 {
		t.Errorf("empty dataset should yield no duplicates, got %v", got)
	}
}

func TestViolenceByCategory(t *testing.T) {
	ds := dataset.New([]core.Comment{
		{Category: "politica", Content: "van a destruir todo, pura violencia"},
		{Category: "politica", Content: "texto pacífico"},
		{Category: "deporte", Content: "lo van a golpear"},
	})

	counts := ViolenceByCategory(ds, nil)
	if len(counts) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(counts))
	}
	if counts[0].Category != "politica" || counts[0].Count != 2 {
		t.Errorf("expected (politica, 2), got %+v", counts[0])
	}
	if counts[1].Category != "deporte" || counts[1].Count != 1 {
		t.Errorf("expected (deporte, 1), got %+v", counts[1])
	}
}

func TestKeyDays(t *testing.T) {
	cls := narrative.NewClassifier()
	days := KeyDays(sample(), cls)

	// Two comments on 2024-07-29, one on each of the other dates; undated excluded
	if len(days) != 3 {
		t.Fatalf("expected 3 key days, got %d", len(days))
	}
	if days[0].Date.Format("2006-01-02") != "2024-07-29" || days[0].TotalComments != 2 {
		t.Errorf("busiest day should come first, got %+v", days[0])
	}
}

func TestNewsRoles(t *testing.T) {
	cls := narrative.NewClassifier()
	ds := dataset.New([]core.Comment{
		{NewsTitle: "pro-news", Content: "bloqueo y revolución"},
		{NewsTitle: "anti-news", Content: "crisis y protesta"},
		{NewsTitle: "neutral-news", Content: "sin nada especial"},
	})

	roles := map[string]string{}
	for _, r := range NewsRoles(ds, cls) {
		roles[r.NewsTitle] = r.Role
	}
	if roles["pro-news"] != RoleHero {
		t.Errorf("PRO-dominant news should be %s, got %s", RoleHero, roles["pro-news"])
	}
	if roles["anti-news"] != RoleVillain {
		t.Errorf("ANTI-dominant news should be %s, got %s", RoleVillain, roles["anti-news"])
	}
	if roles["neutral-news"] != RoleAntihero {
		t.Errorf("NEUTRO-dominant news should be %s, got %s", RoleAntihero, roles["neutral-news"])
	}
}

func TestSummaryBlurb(t *testing.T) {
	cls := narrative.NewClassifier()
	longest := strings.Repeat("bloqueo ", 20) // 160 runes, PRO, the longest comment
	ds := dataset.New([]core.Comment{
		{NewsTitle: "La noticia", Content: "corto"},
		{NewsTitle: "La noticia", Content: longest},
		{NewsTitle: "Otra", Content: "no debe aparecer"},
	})

	blurb := SummaryBlurb(ds, "La noticia", cls)
	if blurb == "" {
		t.Fatal("expected a non-empty blurb")
	}
	if !strings.Contains(blurb, "La noticia") {
		t.Error("blurb should contain the news title")
	}
	if !strings.Contains(blurb, "PRO") {
		t.Error("blurb should name the dominant narrative")
	}
	if !strings.Contains(blurb, "Total comentarios**: 2") {
		t.Errorf("blurb should count only the item's comments:\n%s", blurb)
	}
	// The 160-rune quote is truncated to 100
	quote := truncateRunes(longest, 100)
	if !strings.Contains(blurb, quote) {
		t.Error("blurb should quote the longest comment, truncated to 100 runes")
	}

	if got := SummaryBlurb(ds, "inexistente", cls); got != "" {
		t.Errorf("unknown title should yield empty blurb, got %q", got)
	}
}
