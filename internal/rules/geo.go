package rules

import (
	"fmt"
	"strings"

	"github.com/nao1215/profilescan/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// usIndicators are the declared-side location markers of the corridor.
// Short entries like "ma" and "pa" also match inside longer words; see the
// package doc for why that looseness is accepted.
var usIndicators = []string{
	"usa", "united states", "new york", "california", "texas",
	"pennsylvania", "memphis", "boston", "ma", "pa", "tn",
}

// nigeriaIndicators are the technical-side location markers of the corridor.
var nigeriaIndicators = []string{"nigeria", "ng", "lagos", "abuja", "ikeja"}

// GeoDetector flags profiles that declare a US location while technical
// evidence places them in Nigeria. The US-to-Nigeria corridor is the pattern
// this battery was built around: the indicator lists are extensible, the
// corridor itself is not.
type GeoDetector struct {
	declared  []string
	technical []string
}

// NewGeoDetector creates a GeoDetector with the built-in indicator lists
// plus any extensions.
func NewGeoDetector(extraUS, extraNigeria []string) *GeoDetector {
	return &GeoDetector{
		declared:  appendLowered(usIndicators, extraUS),
		technical: appendLowered(nigeriaIndicators, extraNigeria),
	}
}

// Name returns the check identifier.
func (d *GeoDetector) Name() string {
	return string(model.FlagGeoInconsistency)
}

// Detect compares the declared location against the technically inferred one.
func (d *GeoDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	declared := strings.ToLower(record.DeclaredLocation)
	technical := strings.ToLower(record.TechnicalLocation)

	if !containsAny(declared, d.declared) || !containsAny(technical, d.technical) {
		return nil
	}

	// cases.Caser is stateful, so build it per call instead of sharing one
	// across goroutines.
	titler := cases.Title(language.English)
	flag := model.NewRedFlag(model.FlagGeoInconsistency, fmt.Sprintf(
		"Declared location: %s, Technical location: %s",
		titler.String(declared), titler.String(technical),
	))
	return &flag
}

// Ensure GeoDetector implements Detector.
var _ Detector = (*GeoDetector)(nil)
