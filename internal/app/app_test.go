// ABOUTME: Tests for the view controller.
// ABOUTME: Drives startup, submissions and searches against a buffer.

package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/render"
	"github.com/harper/materials/internal/repository"
	"github.com/harper/materials/internal/store"
	"github.com/harper/materials/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	view     *View
	buf      *render.Buffer
	baseline *store.Memory
	local    *store.Memory
	reports  []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	f := &fixture{
		buf: &render.Buffer{},
		baseline: store.NewMemory("baseline",
			models.Record{"contributor": "alice", "resourceName": "Go Tour", "tags": []any{"go"}},
			models.Record{"contributor": "bob", "resourceName": "Rust Book", "tags": []any{"rust"}},
		),
		local: store.NewMemory("local"),
	}
	repo := repository.New(
		repository.WithBaseline(f.baseline),
		repository.WithMutable(f.local),
		repository.WithLogger(log),
	)
	f.view = NewView(repo, f.buf, func(msg string) { f.reports = append(f.reports, msg) }, log)
	return f
}

func TestStartDrawsEverything(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.view.Start(context.Background()))
	assert.Len(t, f.buf.Fragments(), 2)
}

func TestSearchRedrawsSubset(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.view.Start(context.Background()))

	frags := f.view.Search("RUST")
	require.Len(t, frags, 1)
	assert.Contains(t, string(frags[0]), "Rust Book")
	assert.Len(t, f.buf.Fragments(), 1)

	f.view.Search("")
	assert.Len(t, f.buf.Fragments(), 2)
}

func TestSubmitPersistsAndRedraws(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.view.Start(ctx))

	m, err := f.view.Submit(ctx, models.Form{
		Contributor:  "carol",
		ResourceName: "<b>Wasm</b>",
		Link:         "https://webassembly.org",
		Tags:         "wasm,  web ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"wasm", "web"}, m.Tags)

	frags := f.buf.Fragments()
	require.Len(t, frags, 3)
	assert.Contains(t, string(frags[2]), "&lt;b&gt;Wasm&lt;/b&gt;")

	recs, _ := f.local.List(ctx)
	assert.Len(t, recs, 1)
}

func TestSubmitKeepsQuery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.view.Start(ctx))
	f.view.Search("go")

	_, err := f.view.Submit(ctx, models.Form{ResourceName: "Python"})
	require.NoError(t, err)

	assert.Equal(t, "go", f.view.Query())
	assert.Len(t, f.buf.Fragments(), 1)
}

func TestSubmitFailureReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.view.Start(ctx))
	f.local.FailWith(errors.New("quota exceeded"))

	_, err := f.view.Submit(ctx, models.Form{ResourceName: "Lost"})

	var persistErr *repository.PersistError
	require.ErrorAs(t, err, &persistErr)
	require.Len(t, f.reports, 1)
	assert.True(t, strings.HasPrefix(f.reports[0], "Failed to add material"))
	assert.Len(t, f.buf.Fragments(), 2)
}

func TestStartFailureStillDraws(t *testing.T) {
	f := newFixture(t)
	f.baseline.FailWith(errors.New("offline"))

	err := f.view.Start(context.Background())

	var loadErr *repository.LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Len(t, f.reports, 1)
	assert.Contains(t, f.reports[0], "Failed to load materials")
	assert.Empty(t, f.buf.Fragments())
}

func TestWithThemeClassesCards(t *testing.T) {
	f := newFixture(t)
	state := ui.ViewState{Dark: true}
	f.view.WithTheme(func() ui.ViewState { return state })
	require.NoError(t, f.view.Start(context.Background()))

	for _, frag := range f.buf.Fragments() {
		assert.True(t, strings.HasPrefix(string(frag), `<div class="material-card dark-mode">`))
	}

	state = state.Toggled()
	f.view.Search("")
	for _, frag := range f.buf.Fragments() {
		assert.True(t, strings.HasPrefix(string(frag), `<div class="material-card">`))
	}
}
