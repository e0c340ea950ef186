package cli

import (
	"testing"

	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemperature(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantF   bool
		wantErr bool
	}{
		{"37.2", 37.2, false, false},
		{" 37.2c ", 37.2, false, false},
		{"99.1F", 99.1, true, false},
		{"99.1 f", 99.1, true, false},
		{"", 0, false, true},
		{"F", 0, false, true},
		{"hot", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, f, err := parseTemperature(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantF, f)
		})
	}
}

func TestParseLocation(t *testing.T) {
	loc, err := parseLocation("")
	require.NoError(t, err)
	assert.Nil(t, loc)

	loc, err = parseLocation(" 40.7128 , -74.0060 ")
	require.NoError(t, err)
	assert.Equal(t, &models.Location{Lat: 40.71, Long: -74.01}, loc)

	for _, bad := range []string{"40.7", "a,b", "1,2,3", "91,0", "0,181"} {
		_, err := parseLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseYear(t *testing.T) {
	y, err := parseYear("")
	require.NoError(t, err)
	assert.Zero(t, y)

	y, err = parseYear("1984")
	require.NoError(t, err)
	assert.Equal(t, 1984, y)

	for _, bad := range []string{"84x", "1800", "3000"} {
		_, err := parseYear(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"cough", "tired", "breath"}, splitList("cough, tired  breath"))
	assert.Empty(t, splitList(" , "))
}
