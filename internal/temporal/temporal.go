// Package temporal computes the time-based aggregates: daily activity,
// weekday distribution, peak detection and keyword evolution. Records without
// a date are excluded from every aggregate here; they still count toward the
// corpus totals reported elsewhere.
package temporal

import (
	"math"
	"sort"
	"strings"
	"time"

	"ecocubano/internal/calendar"
	"ecocubano/internal/dataset"
)

// DayCount is one point of the daily activity series.
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// WeekdayCount is one bar of the weekday distribution.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// Peak is a daily count annotated with whether it exceeds the peak threshold.
type Peak struct {
	Date   time.Time `json:"date"`
	Count  int       `json:"count"`
	IsPeak bool      `json:"is_peak"`
}

// KeywordPoint is one point of a keyword's per-day occurrence series.
type KeywordPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DailyCounts groups dated records by calendar day, ascending. Days with no
// comments do not appear, and no day appears twice.
func DailyCounts(ds *dataset.Dataset) []DayCount {
	byDay := make(map[time.Time]int)
	for _, r := range ds.Records() {
		if !r.HasDate() {
			continue
		}
		byDay[r.Day()]++
	}

	out := make([]DayCount, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, DayCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// WeekdayCounts distributes dated records over the localized weekday axis.
// The result always has exactly 7 rows, Monday first; weekdays without
// comments report an explicit zero.
func WeekdayCounts(ds *dataset.Dataset, loc *calendar.Localizer) []WeekdayCount {
	var counts [7]int
	for _, r := range ds.Records() {
		if !r.HasDate() {
			continue
		}
		counts[calendar.MondayIndex(r.Day().Weekday())]++
	}

	names := loc.Names()
	out := make([]WeekdayCount, 7)
	for i := range out {
		out[i] = WeekdayCount{Weekday: names[i], Count: counts[i]}
	}
	return out
}

// PeakThresholdFactor scales the 75th percentile; a day above that product is
// flagged as a peak.
const PeakThresholdFactor = 1.5

// DetectPeaks flags every day whose count exceeds 1.5 times the 75th
// percentile of the daily counts. An empty series yields an empty result; a
// single-day series can never flag itself.
func DetectPeaks(daily []DayCount) []Peak {
	if len(daily) == 0 {
		return nil
	}

	counts := make([]float64, len(daily))
	for i, d := range daily {
		counts[i] = float64(d.Count)
	}
	threshold := Percentile(counts, 0.75) * PeakThresholdFactor

	out := make([]Peak, len(daily))
	for i, d := range daily {
		out[i] = Peak{Date: d.Date, Count: d.Count, IsPeak: float64(d.Count) > threshold}
	}
	return out
}

// Percentile computes the p-quantile (p in [0,1]) with linear interpolation
// between closest ranks, matching the numeric convention the dashboards used.
// An empty input yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// KeywordEvolution counts, per keyword and per day, how many dated records
// contain the keyword as a case-insensitive substring. All series share one
// date axis (every day present in the data), with zeros filled in, so the
// chart lines stay aligned.
func KeywordEvolution(ds *dataset.Dataset, keywords []string) map[string][]KeywordPoint {
	daily := DailyCounts(ds)
	axis := make([]time.Time, len(daily))
	for i, d := range daily {
		axis[i] = d.Date
	}

	out := make(map[string][]KeywordPoint, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		needle := strings.ToLower(kw)

		byDay := make(map[time.Time]int, len(axis))
		for _, r := range ds.Records() {
			if !r.HasDate() {
				continue
			}
			if strings.Contains(strings.ToLower(r.Content), needle) {
				byDay[r.Day()]++
			}
		}

		series := make([]KeywordPoint, len(axis))
		for i, day := range axis {
			series[i] = KeywordPoint{Date: day, Count: byDay[day]}
		}
		out[kw] = series
	}
	return out
}
