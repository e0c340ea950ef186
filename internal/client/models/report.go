package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Symptom is a reported symptom.
type Symptom string

const (
	SymptomCough  Symptom = "COUGH"
	SymptomTired  Symptom = "TIRED"
	SymptomBreath Symptom = "BREATH"
)

var Symptoms = []Symptom{SymptomCough, SymptomTired, SymptomBreath}

var ErrUnknownSymptom = errors.New("unknown symptom")

// Location is a coarse position. Coordinates are kept to two decimals.
type Location struct {
	Lat  float64
	Long float64
}

// NewLocation rounds lat and long to two decimal places.
func NewLocation(lat, long float64) Location {
	return Location{Lat: round2(lat), Long: round2(long)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Report is one temperature/symptom sample. AppID and OwnerID hold hashed
// ids, never the raw ones.
type Report struct {
	ID          string
	AppName     string
	AppID       string
	OwnerID     string
	Location    *Location
	Temperature float64 // Celsius
	Symptoms    []Symptom
	Timestamp   time.Time
}

// Sample is a (timestamp, temperature) point used for history views.
type Sample struct {
	Timestamp   time.Time
	Temperature float64
}

// FahrenheitToCelsius converts f and rounds to one decimal.
func FahrenheitToCelsius(f float64) float64 {
	return math.Round((f-32)*5/9*10) / 10
}

// ParseSymptoms accepts symptom names case-insensitively.
func ParseSymptoms(s []string) ([]Symptom, error) {
	out := make([]Symptom, 0, len(s))
	for _, item := range s {
		sym := Symptom(strings.ToUpper(strings.TrimSpace(item)))
		if sym == "" {
			continue
		}
		known := false
		for _, k := range Symptoms {
			if k == sym {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymptom, item)
		}
		out = append(out, sym)
	}
	return out, nil
}
