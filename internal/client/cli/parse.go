package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
)

var (
	errEmptyAnswer = errors.New("no value entered")
	errBadLocation = errors.New("location must be lat,long")
)

// parseTemperature reads "37.2", "37.2C" or "99.1F". The bool reports
// Fahrenheit.
func parseTemperature(s string) (float64, bool, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false, errEmptyAnswer
	}

	fahrenheit := false
	switch {
	case strings.HasSuffix(s, "F"):
		fahrenheit = true
		s = strings.TrimSuffix(s, "F")
	case strings.HasSuffix(s, "C"):
		s = strings.TrimSuffix(s, "C")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid temperature %q", s)
	}
	return v, fahrenheit, nil
}

// parseLocation reads "lat,long". An empty answer means no location.
func parseLocation(s string) (*models.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, errBadLocation
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errBadLocation
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, errBadLocation
	}
	if lat < -90 || lat > 90 || long < -180 || long > 180 {
		return nil, fmt.Errorf("location out of range: %s", s)
	}

	loc := models.NewLocation(lat, long)
	return &loc, nil
}

// parseYear reads an optional birth year.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1900 || y > 2100 {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return y, nil
}
