package sqlite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func siteEvents(t *testing.T, path string) []domain.InvestigationEvent {
	t.Helper()
	return parseEvents(t, path, siteText)
}

func parseEvents(t *testing.T, path, text string) []domain.InvestigationEvent {
	t.Helper()
	f, err := domain.Parse(domain.Source{Path: path, Encoding: "utf-8", Lines: strings.Split(text, "\n")})
	require.NoError(t, err)
	return domain.NewInvestigationEvents(f)
}

const siteText = `FO 2.5
KJ ETRS-TM35FIN N2000
TT PA
XY 6672000.0 385000.0 12.5 24052023 BH1
0.2 0 12 Sa
0.4 -5 - -
0.6 25 4 SaSi
-1 KA
TT VP
12.0 24052023 13.0 8.0 1.0 AB
-1`

func TestStore_LoadBatch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	events := siteEvents(t, "site/BH1.tek")
	require.Len(t, events, 2)

	require.NoError(t, st.LoadBatch(ctx, events))

	counts, err := st.CountByMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"PA": 1, "VP": 1}, counts)

	layers, err := st.SoilLayers(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Equal(t, events[0].Investigation.SoilLayers, layers)
	require.NotEmpty(t, layers)

	payload, err := st.Payload(ctx, events[0].ID)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.Equal(t, "PA", doc["method"].(map[string]any)["token"])
}

func TestStore_LoadBatchIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	events := siteEvents(t, "site/BH1.tek")

	require.NoError(t, st.LoadBatch(ctx, events))
	require.NoError(t, st.LoadBatch(ctx, events))
	require.NoError(t, st.LoadBatch(ctx, siteEvents(t, "site/BH2.tek")))

	counts, err := st.CountByMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"PA": 2, "VP": 2}, counts)

	var files int
	require.NoError(t, st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&files))
	assert.Equal(t, 2, files)

	layers, err := st.SoilLayers(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Len(t, layers, len(events[0].Investigation.SoilLayers))
}

func TestStore_ReloadEditedFileReplacesRows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	original := parseEvents(t, "site/BH1.tek", siteText)
	require.NoError(t, st.LoadBatch(ctx, original))

	edited := parseEvents(t, "site/BH1.tek", strings.Replace(siteText, "XY 6672000.0", "XY 6672001.0", 1))
	require.NotEqual(t, original[0].ID, edited[0].ID)
	require.NoError(t, st.LoadBatch(ctx, edited))

	counts, err := st.CountByMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"PA": 1, "VP": 1}, counts)

	_, err = st.Payload(ctx, original[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	layers, err := st.SoilLayers(ctx, original[0].ID)
	require.NoError(t, err)
	assert.Empty(t, layers)

	p, err := st.Location(ctx, edited[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{385000.0, 6672001.0, 12.5}, p.FlatCoords())
}

func TestStore_LoadedAtUsesEventTime(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.May, 1, 8, 30, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.LoadBatch(ctx, siteEvents(t, "site/BH1.tek")))

	var loadedAt string
	require.NoError(t, st.db.QueryRowContext(ctx, `SELECT loaded_at FROM files`).Scan(&loadedAt))
	assert.True(t, strings.HasPrefix(loadedAt, "2024-05-01"), loadedAt)
}

func TestStore_Location(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	events := siteEvents(t, "site/BH1.tek")
	require.NoError(t, st.LoadBatch(ctx, events))

	p, err := st.Location(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{385000.0, 6672000.0, 12.5}, p.FlatCoords())
	assert.Equal(t, 3067, p.SRID())

	_, err = st.Location(ctx, events[1].ID)
	assert.ErrorIs(t, err, domain.ErrNoLocation)

	_, err = st.Location(ctx, "PA-missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Payload(ctx, "PA-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LoadBatchEmpty(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.LoadBatch(context.Background(), nil))
}
