package docstore

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/simpletemp/internal/client/migrations"
	"github.com/dmitrijs2005/simpletemp/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, migrations.Up(context.Background(), db))

	s := NewSQLiteStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupBadger(t *testing.T) Store {
	t.Helper()
	db, err := OpenBadger("")
	require.NoError(t, err)

	s, err := NewBadgerStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var engines = map[string]func(t *testing.T) Store{
	"sqlite": setupSQLite,
	"badger": setupBadger,
}

func forEachEngine(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, setup := range engines {
		t.Run(name, func(t *testing.T) {
			fn(t, setup(t))
		})
	}
}

func report(location, person string) *Document {
	d := NewDocument("", "report")
	d.Set("report_person_id", person)
	if location != "" {
		d.Set("report_location", location)
	}
	return d
}

func TestSave_AssignsIDAndIncreasingSeq(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		a := report("12.34,56.78", "p1")
		require.NoError(t, s.Save(ctx, a))
		require.NotEmpty(t, a.ID)

		b := report("", "p2")
		require.NoError(t, s.Save(ctx, b))
		assert.Greater(t, b.Seq, a.Seq)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestGet_RoundTripsProps(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		d := NewDocument("doc-1", "profile")
		d.Set("profile_name", "Ann")
		d.Set("profile_birth_year", 1980)
		d.Set("profile_conditions", []string{"HEART", "RESP"})
		require.NoError(t, s.Save(ctx, d))

		got, err := s.Get(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "profile", got.Type())
		assert.Equal(t, "Ann", got.String("profile_name"))
		year, ok := got.Float("profile_birth_year")
		require.True(t, ok)
		assert.Equal(t, 1980.0, year)
		assert.Equal(t, []string{"HEART", "RESP"}, got.Strings("profile_conditions"))
		assert.Equal(t, d.Seq, got.Seq)
	})
}

func TestGet_Missing(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		_, err := s.Get(context.Background(), "nope")
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestSave_ReplaceMovesDocumentToNewSeq(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first := NewDocument("a", "profile")
		require.NoError(t, s.Save(ctx, first))
		second := NewDocument("b", "profile")
		require.NoError(t, s.Save(ctx, second))

		first.Set("profile_name", "changed")
		require.NoError(t, s.Save(ctx, first))

		docs, err := s.Query(ctx, Query{Type: "profile"})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "b", docs[0].ID)
		assert.Equal(t, "a", docs[1].ID)
		assert.Equal(t, "changed", docs[1].String("profile_name"))

		all, err := s.Changes(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestSave_TypeChangeUpdatesIndex(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		d := NewDocument("x", "draft")
		require.NoError(t, s.Save(ctx, d))
		d.Set(PropDocType, "report")
		require.NoError(t, s.Save(ctx, d))

		drafts, err := s.Query(ctx, Query{Type: "draft"})
		require.NoError(t, err)
		assert.Empty(t, drafts)

		reports, err := s.Query(ctx, Query{Type: "report"})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "x", reports[0].ID)
	})
}

func TestQuery_FiltersByTypeAndProps(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, report("1.00,2.00", "p1")))
		require.NoError(t, s.Save(ctx, report("3.00,4.00", "p2")))
		require.NoError(t, s.Save(ctx, report("5.00,6.00", "p1")))
		require.NoError(t, s.Save(ctx, NewDocument("", "app")))

		docs, err := s.Query(ctx, Query{Type: "report", Equals: map[string]string{"report_person_id": "p1"}})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "1.00,2.00", docs[0].String("report_location"))
		assert.Equal(t, "5.00,6.00", docs[1].String("report_location"))

		apps, err := s.Query(ctx, Query{Type: "app"})
		require.NoError(t, err)
		assert.Len(t, apps, 1)

		all, err := s.Query(ctx, Query{})
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}

func TestQuery_RejectsBadPropertyName(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		_, err := s.Query(context.Background(), Query{Equals: map[string]string{"a') OR 1=1 --": "x"}})
		require.ErrorIs(t, err, common.ErrInvalidInput)
	})
}

func TestChanges_SinceAndLimit(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		var seqs []int64
		for i := 0; i < 5; i++ {
			d := report("", "p")
			require.NoError(t, s.Save(ctx, d))
			seqs = append(seqs, d.Seq)
		}

		docs, err := s.Changes(ctx, seqs[1], 2)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, seqs[2], docs[0].Seq)
		assert.Equal(t, seqs[3], docs[1].Seq)

		rest, err := s.Changes(ctx, seqs[3], 0)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, seqs[4], rest[0].Seq)

		none, err := s.Changes(ctx, seqs[4], 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestSave_ConcurrentWritersGetDistinctSeqs(t *testing.T) {
	forEachEngine(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		const n = 20
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.Save(ctx, report("", "p"))
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		docs, err := s.Changes(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, docs, n)
		for i := 1; i < len(docs); i++ {
			assert.Greater(t, docs[i].Seq, docs[i-1].Seq)
		}
	})
}
