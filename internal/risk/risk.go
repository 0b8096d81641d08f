// Package risk scores four 1-5 ratings into a weighted risk score and maps the
// score to a severity band. Everything here is pure and safe for concurrent use.
package risk

import (
	"fmt"
	"strings"
)

type Band string

const (
	BandLow    Band = "Low"
	BandMedium Band = "Medium"
	BandHigh   Band = "High"
)

const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// Weights are kept in tenths so the weighted sum is exact: 4+3+2+1 = 10.
const (
	likelihoodTenths = 4
	impactTenths     = 3
	severityTenths   = 2
	frequencyTenths  = 1

	LikelihoodWeight = likelihoodTenths / 10.0
	ImpactWeight     = impactTenths / 10.0
	SeverityWeight   = severityTenths / 10.0
	FrequencyWeight  = frequencyTenths / 10.0
)

// compile-time check that the weights sum to exactly 1.0
var _ [0]struct{} = [likelihoodTenths + impactTenths + severityTenths + frequencyTenths - 10]struct{}{}

const (
	MinRating = 1
	MaxRating = 5

	lowUpperBound    = 2.0
	mediumUpperBound = 4.0
)

type Ratings struct {
	Likelihood int
	Impact     int
	Severity   int
	Frequency  int
}

type Classification struct {
	Band        Band
	Color       string
	Description string
}

// Assessment is the derived, read-only result for one set of ratings.
type Assessment struct {
	Ratings
	Score       float64
	Band        Band
	Color       string
	Description string
	Mitigation  string
}

var classifications = map[Band]Classification{
	BandLow:    {Band: BandLow, Color: ColorGreen, Description: "Minimal impact, unlikely to occur."},
	BandMedium: {Band: BandMedium, Color: ColorYellow, Description: "Moderate impact, possible occurrence."},
	BandHigh:   {Band: BandHigh, Color: ColorRed, Description: "Severe impact, highly likely to occur."},
}

var mitigations = map[Band]string{
	BandHigh: "Immediate action required: review and tighten access controls, apply all outstanding " +
		"security patches, isolate the affected systems and put continuous monitoring in place " +
		"until the risk has been reduced.",
	BandMedium: "Plan corrective work: schedule regular security audits, apply pending patches in the " +
		"next maintenance window and improve monitoring of the affected systems.",
	BandLow: "No immediate action needed: keep up routine checks and review this risk again at the " +
		"next scheduled assessment.",
}

// Score returns 0.4*likelihood + 0.3*impact + 0.2*severity + 0.1*frequency.
// The sum is taken in integer tenths, so 2.0 and 4.0 come out exact.
func Score(r Ratings) float64 {
	tenths := likelihoodTenths*r.Likelihood +
		impactTenths*r.Impact +
		severityTenths*r.Severity +
		frequencyTenths*r.Frequency
	return float64(tenths) / 10
}

// Classify maps a score to its band. Upper bounds are inclusive:
// 2.0 is Low and 4.0 is Medium.
func Classify(score float64) Classification {
	switch {
	case score <= lowUpperBound:
		return classifications[BandLow]
	case score <= mediumUpperBound:
		return classifications[BandMedium]
	default:
		return classifications[BandHigh]
	}
}

// MitigationText returns the recommended response for a band, or "" for an unknown band.
func MitigationText(b Band) string {
	return mitigations[b]
}

func Evaluate(r Ratings) Assessment {
	score := Score(r)
	cl := Classify(score)
	return Assessment{
		Ratings:     r,
		Score:       score,
		Band:        cl.Band,
		Color:       cl.Color,
		Description: cl.Description,
		Mitigation:  MitigationText(cl.Band),
	}
}

// Bands lists the bands from lowest to highest.
func Bands() []Band {
	return []Band{BandLow, BandMedium, BandHigh}
}

// Color returns the display color of the band.
func (b Band) Color() string {
	return classifications[b].Color
}

func (b Band) Valid() bool {
	_, ok := classifications[b]
	return ok
}

func (b Band) String() string {
	return string(b)
}

// ParseBand accepts a band name in any letter case.
func ParseBand(s string) (Band, error) {
	for _, b := range Bands() {
		if strings.EqualFold(strings.TrimSpace(s), string(b)) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown risk band %q", s)
}
