package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/models"
	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
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

func newDBQueue() *dispatch.Queue {
	return dispatch.New("db")
}

// fakeApps is an in-memory apps.Repository.
type fakeApps struct {
	App         *models.App
	GetErr      error
	RegisterErr error

	RegisterCalls int
}

func (f *fakeApps) GetApp(context.Context) (*models.App, error) {
	return f.App, f.GetErr
}

func (f *fakeApps) RegisterApp(_ context.Context, app *models.App) error {
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.App = app
	return nil
}

// fakeSyncer records Sync calls.
type fakeSyncer struct {
	mu    sync.Mutex
	Calls int
}

func (f *fakeSyncer) Sync(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
}

func (f *fakeSyncer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}
