package reports

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) docstore.Store {
	t.Helper()
	db, err := docstore.OpenBadger("")
	require.NoError(t, err)
	s, err := docstore.NewBadgerStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAdd_StoresLocationOnlyWhenPresent(t *testing.T) {
	store := setupStore(t)
	r := NewDocumentRepository(store)
	ctx := context.Background()

	loc := models.NewLocation(1.234, 5.678)
	with := &models.Report{OwnerID: "o", Temperature: 37.2, Location: &loc}
	without := &models.Report{OwnerID: "o", Temperature: 36.6}
	require.NoError(t, r.Add(ctx, with))
	require.NoError(t, r.Add(ctx, without))

	d1, err := store.Get(ctx, with.ID)
	require.NoError(t, err)
	assert.True(t, d1.Has(PropLocation))
	assert.Equal(t, DocType, d1.Type())

	d2, err := store.Get(ctx, without.ID)
	require.NoError(t, err)
	assert.False(t, d2.Has(PropLocation))
}

func TestListByOwner_DecodesReports(t *testing.T) {
	r := NewDocumentRepository(setupStore(t))
	ctx := context.Background()

	ts := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	loc := models.NewLocation(40.7128, -74.006)
	in := &models.Report{
		AppName:     "SimpleTemp",
		AppID:       "app-hash",
		OwnerID:     "owner-hash",
		Location:    &loc,
		Temperature: 38.1,
		Symptoms:    []models.Symptom{models.SymptomCough, models.SymptomTired},
		Timestamp:   ts,
	}
	require.NoError(t, r.Add(ctx, in))
	require.NoError(t, r.Add(ctx, &models.Report{OwnerID: "someone-else"}))

	got, err := r.ListByOwner(ctx, "owner-hash")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *in, got[0])
}

func TestRecent_ReturnsSamplesInOrder(t *testing.T) {
	r := NewDocumentRepository(setupStore(t))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, temp := range []float64{36.6, 37.4, 38.0} {
		require.NoError(t, r.Add(ctx, &models.Report{
			OwnerID:     "o",
			Temperature: temp,
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	samples, err := r.Recent(ctx, "o")
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, models.Sample{Timestamp: base, Temperature: 36.6}, samples[0])
	assert.Equal(t, 38.0, samples[2].Temperature)
}

func TestAdd_DefaultsTimestamp(t *testing.T) {
	r := NewDocumentRepository(setupStore(t))
	rep := &models.Report{OwnerID: "o"}
	before := time.Now()

	require.NoError(t, r.Add(context.Background(), rep))
	assert.False(t, rep.Timestamp.Before(before.Add(-time.Second)))
}

func TestDecode_BadTimestamp(t *testing.T) {
	d := docstore.NewDocument("x", DocType)
	d.Set(PropTimestamp, "yesterday")

	_, err := Decode(d)
	require.Error(t, err)
}
