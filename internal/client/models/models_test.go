package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConditions_OK(t *testing.T) {
	got, err := ParseConditions([]string{"heart", " RESP ", "", "Diabetes"})
	require.NoError(t, err)
	require.Equal(t, []Condition{ConditionHeart, ConditionResp, ConditionDiabetes}, got)
}

func TestParseConditions_Unknown(t *testing.T) {
	_, err := ParseConditions([]string{"HEART", "flu"})
	require.ErrorIs(t, err, ErrUnknownCondition)
}

func TestParseSymptoms_OK(t *testing.T) {
	got, err := ParseSymptoms([]string{"cough", "BREATH"})
	require.NoError(t, err)
	require.Equal(t, []Symptom{SymptomCough, SymptomBreath}, got)
}

func TestParseSymptoms_Unknown(t *testing.T) {
	_, err := ParseSymptoms([]string{"sneeze"})
	require.ErrorIs(t, err, ErrUnknownSymptom)
}

func TestNewLocation_Rounds(t *testing.T) {
	l := NewLocation(37.77493, -122.41942)
	require.Equal(t, 37.77, l.Lat)
	require.Equal(t, -122.42, l.Long)
}

func TestFahrenheitToCelsius(t *testing.T) {
	require.Equal(t, 37.0, FahrenheitToCelsius(98.6))
	require.Equal(t, 0.0, FahrenheitToCelsius(32))
	require.Equal(t, 38.9, FahrenheitToCelsius(102))
}
