package data

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/isre1late/json-samples/internal/core"
	"github.com/isre1late/json-samples/internal/domain/model"
	apperrors "github.com/isre1late/json-samples/internal/errors"
	"github.com/isre1late/json-samples/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchedJSONRepo_Stream_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := testutil.SetupEphemeralSchemaDB(t)
	base := testutil.TestTime()
	testutil.SeedFetchedJSON(t, db,
		testutil.FetchedJSONFixture{URL: "https://example.test/a", FetchedAt: base, Body: `{"a":1}`},
		testutil.FetchedJSONFixture{
			URL:       "https://example.test/b",
			FetchedAt: base.Add(250 * time.Millisecond),
			Body:      `{"b":"ü"}`,
		},
		testutil.FetchedJSONFixture{URL: "https://example.test/c", FetchedAt: base.Add(time.Minute), Body: ""},
	)

	repo := NewFetchedJSONRepo(db)

	t.Run("streams every row across batches", func(t *testing.T) {
		var got []*model.FetchedJSON
		err := repo.Stream(t.Context(), core.StreamOptions{CursorName: "it_all", Limit: 100, FetchSize: 2},
			func(row *model.FetchedJSON) error {
				got = append(got, row)
				return nil
			})
		require.NoError(t, err)
		require.Len(t, got, 3)

		byURL := make(map[string]*model.FetchedJSON, len(got))
		for _, r := range got {
			byURL[r.URL] = r
		}
		require.Contains(t, byURL, "https://example.test/b")
		b := byURL["https://example.test/b"]
		assert.Equal(t, model.TimestampZoned, b.FetchedAtKind)
		assert.Equal(t, `{"b":"ü"}`, b.Body)
		assert.True(t, b.FetchedAt.Equal(base.Add(250*time.Millisecond)))
		assert.Empty(t, byURL["https://example.test/c"].Body)
	})

	t.Run("honors the row limit", func(t *testing.T) {
		count := 0
		err := repo.Stream(t.Context(), core.StreamOptions{CursorName: "it_limit", Limit: 2, FetchSize: 1},
			func(*model.FetchedJSON) error {
				count++
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("callback error stops the stream", func(t *testing.T) {
		stop := errors.New("stop")
		count := 0
		err := repo.Stream(t.Context(), core.StreamOptions{CursorName: "it_stop", FetchSize: 10},
			func(*model.FetchedJSON) error {
				count++
				return stop
			})
		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, count)
	})

	t.Run("cursor name can be reused after a run", func(t *testing.T) {
		for i := range 2 {
			err := repo.Stream(t.Context(), core.StreamOptions{CursorName: "it_reuse"},
				func(*model.FetchedJSON) error { return nil })
			require.NoError(t, err, fmt.Sprintf("run %d", i))
		}
	})
}

func TestFetchedJSONRepo_Stream_MissingTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := testutil.SetupEphemeralSchemaDB(t)
	_, err := db.ExecContext(t.Context(), "DROP TABLE fetched_json")
	require.NoError(t, err)

	err = NewFetchedJSONRepo(db).Stream(t.Context(), core.StreamOptions{CursorName: "it_missing"},
		func(*model.FetchedJSON) error { return nil })
	require.Error(t, err)
	assert.True(t, apperrors.IsQuery(err), "got %v", err)
}
