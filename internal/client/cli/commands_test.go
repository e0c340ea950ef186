package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/simpletemp/internal/client/client"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/client/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unlocked(t *testing.T) *testApp {
	t.Helper()
	ta := newTestApp(t, "")
	ta.loggedIn.Store(true)
	return ta
}

func TestAddProfile(t *testing.T) {
	ta := unlocked(t)
	stubAnswers(t, []string{"Alice", "1980", "Main St 1", "Springfield", "IL", "62701", "heart, resp"})

	require.NoError(t, ta.AddProfile(context.Background()))

	require.Len(t, ta.profiles.list, 1)
	p := ta.profiles.list[0]
	assert.Equal(t, "new-id", p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 1980, p.BirthYear)
	assert.Equal(t, "Springfield", p.City)
	assert.Equal(t, "62701", p.Zip)
	assert.Equal(t, []models.Condition{models.ConditionHeart, models.ConditionResp}, p.Conditions)
	assert.Contains(t, ta.out.String(), "Profile saved: new-id")
}

func TestAddProfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"empty name", []string{""}},
		{"bad year", []string{"Bob", "nineteen"}},
		{"unknown condition", []string{"Bob", "", "", "", "", "", "flu"}},
		{"input ends", []string{"Bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := unlocked(t)
			stubAnswers(t, tt.answers)

			require.Error(t, ta.AddProfile(context.Background()))
			assert.Empty(t, ta.profiles.list)
		})
	}
}

func TestProfiles_List(t *testing.T) {
	ta := unlocked(t)
	require.NoError(t, ta.Profiles(context.Background()))
	assert.Contains(t, ta.out.String(), "No profiles")

	ta.profiles.list = []models.Person{
		{ID: "a", Name: "Alice", BirthYear: 1980, Conditions: []models.Condition{models.ConditionDiabetes}},
		{ID: "b", Name: "Bob"},
	}
	ta.out.Reset()
	require.NoError(t, ta.Profiles(context.Background()))
	assert.Equal(t, "1. Alice (1980) [DIABETES]\n2. Bob\n", ta.out.String())
}

func TestReport(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 8, 30, 0, 0, time.FixedZone("X", 3600))
	origNow := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = origNow })

	ta := unlocked(t)
	ta.profiles.list = []models.Person{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	stubAnswers(t, []string{"2", "99.5F", "cough tired", "51.501,-0.142"})

	require.NoError(t, ta.Report(context.Background()))

	require.Len(t, ta.reports.inputs, 1)
	in := ta.reports.inputs[0]
	assert.Equal(t, "p2", in.ProfileID)
	assert.Equal(t, 99.5, in.Temperature)
	assert.True(t, in.Fahrenheit)
	assert.Equal(t, []models.Symptom{models.SymptomCough, models.SymptomTired}, in.Symptoms)
	require.NotNil(t, in.Location)
	assert.Equal(t, models.Location{Lat: 51.5, Long: -0.14}, *in.Location)
	assert.Equal(t, fixed.UTC(), in.Timestamp)
	assert.Contains(t, ta.out.String(), "Report saved: 37.5°C, queued for sync")
}

func TestReport_WithoutLocation(t *testing.T) {
	ta := unlocked(t)
	ta.profiles.list = []models.Person{{ID: "p1", Name: "Alice"}}
	stubAnswers(t, []string{"1", "37.2", "", ""})

	require.NoError(t, ta.Report(context.Background()))

	require.Len(t, ta.reports.inputs, 1)
	assert.Nil(t, ta.reports.inputs[0].Location)
	assert.Empty(t, ta.reports.inputs[0].Symptoms)
	assert.Contains(t, ta.out.String(), "Report saved: 37.2°C\n")
}

func TestReport_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		wantErr error
	}{
		{"no such profile", []string{"3"}, nil},
		{"not a number", []string{"first"}, nil},
		{"bad temperature", []string{"1", "warm"}, nil},
		{"empty temperature", []string{"1", ""}, errEmptyAnswer},
		{"bad symptom", []string{"1", "37", "sneezing"}, models.ErrUnknownSymptom},
		{"bad location", []string{"1", "37", "", "north"}, errBadLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := unlocked(t)
			ta.profiles.list = []models.Person{{ID: "p1", Name: "Alice"}}
			stubAnswers(t, tt.answers)

			err := ta.Report(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, ta.reports.inputs)
		})
	}
}

func TestReport_NoProfiles(t *testing.T) {
	ta := unlocked(t)
	stubAnswers(t, nil)

	require.ErrorIs(t, ta.Report(context.Background()), errNoProfiles)
	require.ErrorIs(t, ta.Recent(context.Background()), errNoProfiles)
}

func TestRecent(t *testing.T) {
	ta := unlocked(t)
	ta.profiles.list = []models.Person{{ID: "p1", Name: "Alice"}}
	stubAnswers(t, []string{"1", "1"})

	require.NoError(t, ta.Recent(context.Background()))
	assert.Contains(t, ta.out.String(), "No reports")

	ts := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	ta.reports.samples = []models.Sample{{Timestamp: ts, Temperature: 37.4}}
	ta.out.Reset()
	require.NoError(t, ta.Recent(context.Background()))
	assert.Contains(t, ta.out.String(), ts.Local().Format("2006-01-02 15:04")+"  37.4°C")
}

func TestSync(t *testing.T) {
	tests := []struct {
		name    string
		stats   sync.Stats
		err     error
		wantOut string
		wantErr bool
	}{
		{"success", sync.Stats{Pushed: 2, Pulled: 1}, nil, "Sync finished: pushed 2, pulled 1", false},
		{"unavailable", sync.Stats{}, fmt.Errorf("push error: %w", client.ErrUnavailable), "Sync target unavailable", false},
		{"other error", sync.Stats{}, errors.New("boom"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := unlocked(t)
			ta.syncer.stats, ta.syncer.err = tt.stats, tt.err

			err := ta.Sync(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, ta.out.String(), tt.wantOut)
			assert.Equal(t, 1, ta.syncer.runs)
		})
	}
}
