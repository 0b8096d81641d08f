// Package report turns stored risk assessments into chart series, CSV and PDF.
// It only reads stored fields; nothing is re-scored here.
package report

import (
	"risk-assessor/internal/models"
	"risk-assessor/internal/risk"
)

type BandCount struct {
	Band  risk.Band
	Color string
	Count int64
}

// Summary holds per-band counts in Low, Medium, High order.
type Summary struct {
	Bands []BandCount
	Total int64
}

func NewSummary(counts map[risk.Band]int64) Summary {
	var s Summary
	for _, b := range risk.Bands() {
		n := counts[b]
		s.Bands = append(s.Bands, BandCount{Band: b, Color: b.Color(), Count: n})
		s.Total += n
	}
	return s
}

func Summarize(risks []models.Risk) Summary {
	counts := make(map[risk.Band]int64, len(risk.Bands()))
	for _, r := range risks {
		counts[r.Level]++
	}
	return NewSummary(counts)
}

// Count returns the count for one band.
func (s Summary) Count(b risk.Band) int64 {
	for _, bc := range s.Bands {
		if bc.Band == b {
			return bc.Count
		}
	}
	return 0
}

// Series is the chart-ready shape consumed by the charts page.
type Series struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
	Colors []string `json:"colors"`
	Total  int64    `json:"total"`
}

func (s Summary) Series() Series {
	out := Series{
		Labels: make([]string, 0, len(s.Bands)),
		Data:   make([]int64, 0, len(s.Bands)),
		Colors: make([]string, 0, len(s.Bands)),
		Total:  s.Total,
	}
	for _, bc := range s.Bands {
		out.Labels = append(out.Labels, string(bc.Band))
		out.Data = append(out.Data, bc.Count)
		out.Colors = append(out.Colors, bc.Color)
	}
	return out
}
