package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ecocubano/internal/analysis"
	"ecocubano/internal/config"
	"ecocubano/internal/ingest"
	"ecocubano/internal/logger"
	"ecocubano/internal/narrative"
	"ecocubano/internal/store"
)

// NewAnalyzeCmd creates the analyze command: one full pipeline pass over the
// configured export file, printed as JSON or a text summary.
func NewAnalyzeCmd() *cobra.Command {
	var (
		input    string
		category string
		from     string
		to       string
		keywords string
		topN     int
		politics bool
		format   string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis over a comment export",
		Long: `Load a JSON comment export, apply the sidebar-style filters, and print
the full analysis report.

Examples:
  # Analyze the configured export file
  ecocubano analyze

  # Politics-only pipeline with strict date filtering
  ecocubano analyze --politics

  # Filter by category and date range, track custom keywords
  ecocubano analyze --category politica --from 2024-07-01 --to 2024-07-31 \
    --keywords "bloqueo, apagones"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(input, category, from, to, keywords, topN, politics, format)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the JSON export (default from config)")
	cmd.Flags().StringVar(&category, "category", "", "category filter (empty or 'Todas' = all)")
	cmd.Flags().StringVar(&from, "from", "", "start date, YYYY-MM-DD inclusive")
	cmd.Flags().StringVar(&to, "to", "", "end date, YYYY-MM-DD inclusive")
	cmd.Flags().StringVar(&keywords, "keywords", "", "comma-separated keywords to track (default from config)")
	cmd.Flags().IntVar(&topN, "top", 0, "top-N for rankings, 3-10 (default from config)")
	cmd.Flags().BoolVar(&politics, "politics", false, "politics-only pipeline: restrict to 'politica' and drop undated comments")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")

	return cmd
}

func runAnalyze(input, category, from, to, keywords string, topN int, politics bool, format string) error {
	cfg := config.Get()

	if input == "" {
		input = cfg.Data.File
	}
	if keywords == "" {
		keywords = cfg.Analysis.Keywords
	}
	if topN == 0 {
		topN = cfg.Analysis.TopN
	}

	ingestOpts := ingest.Options{Category: cfg.Data.Category, StrictDates: cfg.Data.StrictDates}
	if politics {
		ingestOpts = ingest.Options{Category: "politica", StrictDates: true}
	}

	st := store.New(input, ingestOpts)
	ds, err := st.Dataset()
	if err != nil {
		// Empty dataset is still reported; the worst outcome is "no data"
		logger.Warn("dataset load failed, reporting empty dataset", "error", err.Error())
	}

	opts := analysis.Options{
		Category:      category,
		Keywords:      analysis.ParseKeywords(keywords),
		TopN:          topN,
		ShowWordCloud: cfg.Analysis.ShowWordCloud,
		ShowSentiment: cfg.Analysis.ShowSentiment,
	}
	if d, err := time.Parse("2006-01-02", from); err == nil {
		opts.Dates.From = &d
	}
	if d, err := time.Parse("2006-01-02", to); err == nil {
		opts.Dates.To = &d
	}

	pipeline := analysis.New(cfg.Analysis.Locale)
	report := pipeline.Run(ds, opts)

	if strings.EqualFold(format, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printTextReport(report)
	return nil
}

func printTextReport(r *analysis.Report) {
	fmt.Printf("Comentarios analizados: %d\n", r.Overview.TotalComments)
	fmt.Printf("Usuarios únicos: %d\n", r.Overview.UniqueAuthors)
	fmt.Printf("Noticias analizadas: %d\n", r.Overview.UniqueNews)
	if r.Overview.FirstDate != nil && r.Overview.LastDate != nil {
		fmt.Printf("Período: %s — %s\n", formatDay(*r.Overview.FirstDate), formatDay(*r.Overview.LastDate))
	}

	fmt.Println("\nComentarios por categoría:")
	for _, c := range r.Categories {
		fmt.Printf("  %-20s %d\n", c.Key, c.Count)
	}

	fmt.Printf("\nTop %d noticias más comentadas:\n", r.Options.TopN)
	for _, n := range r.TopNews {
		fmt.Printf("  %4d  %s\n", n.Count, n.Key)
	}

	fmt.Println("\nActividad por día de la semana:")
	for _, wd := range r.Weekdays {
		fmt.Printf("  %-10s %d\n", wd.Weekday, wd.Count)
	}

	peaks := 0
	for _, p := range r.Peaks {
		if p.IsPeak {
			peaks++
			fmt.Printf("\nPico de actividad: %s (%d comentarios)", formatDay(p.Date), p.Count)
		}
	}
	if peaks > 0 {
		fmt.Println()
	}

	fmt.Println("\nNarrativas:")
	for _, label := range []narrative.Label{narrative.LabelPro, narrative.LabelAnti, narrative.LabelNeutro} {
		fmt.Printf("  %-7s %d\n", label, r.Narratives[label])
	}

	if r.SloganSummary.TotalAnalyzed > 0 {
		fmt.Printf("\nConsignas: %d PRO, %d ANTI; más frecuente: %q\n",
			r.SloganSummary.ProDetected, r.SloganSummary.AntiDetected, r.SloganSummary.MostFrequent)
	}

	if r.Sentiment != nil {
		fmt.Printf("\nSentimiento: %d positivos, %d negativos, %d neutrales (promedio %.2f)\n",
			r.Sentiment.Positive, r.Sentiment.Negative, r.Sentiment.Neutral, r.Sentiment.AverageScore)
	}

	if len(r.Duplicates) > 0 {
		fmt.Println("\nComentarios más repetidos:")
		for _, d := range r.Duplicates {
			fmt.Printf("  %3d× %s\n", d.Repetitions, truncate(d.Content, 60))
		}
	}
}

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
