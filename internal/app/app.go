// ABOUTME: Controller wiring repository, filter and renderer to a surface.
// ABOUTME: Implements startup, submit, and search control flow.

package app

import (
	"context"
	"sync"

	"github.com/harper/materials/internal/filter"
	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/render"
	"github.com/harper/materials/internal/repository"
	"github.com/harper/materials/internal/ui"
	"github.com/sirupsen/logrus"
)

// Reporter receives user-facing error messages.
type Reporter func(msg string)

// View drives one display surface. Errors are reported and logged but
// never stop the view; it keeps showing the last collection it had.
type View struct {
	repo    *repository.Repository
	surface render.Surface
	report  Reporter
	log     logrus.FieldLogger

	theme func() ui.ViewState

	mu    sync.Mutex
	query string
}

func NewView(repo *repository.Repository, surface render.Surface, report Reporter, log logrus.FieldLogger) *View {
	if report == nil {
		report = func(string) {}
	}
	return &View{
		repo:    repo,
		surface: surface,
		report:  report,
		log:     log.WithField("component", "view"),
	}
}

// WithTheme makes every redraw apply the state returned by theme to the
// cards.
func (v *View) WithTheme(theme func() ui.ViewState) *View {
	v.theme = theme
	return v
}

// Start loads every source and draws the full list.
func (v *View) Start(ctx context.Context) error {
	_, err := v.repo.LoadAll(ctx)
	if err != nil {
		v.fail("Failed to load materials", err)
	}
	v.redraw()
	return err
}

// Refresh reloads and redraws with the current query.
func (v *View) Refresh(ctx context.Context) error {
	return v.Start(ctx)
}

// Submit shapes the form into a material, persists it and redraws.
func (v *View) Submit(ctx context.Context, f models.Form) (*models.Material, error) {
	m := f.Material()
	if err := v.repo.Add(ctx, m); err != nil {
		v.fail("Failed to add material", err)
		v.redraw()
		return nil, err
	}
	v.redraw()
	return m, nil
}

// Search filters the live collection by query and redraws the subset.
func (v *View) Search(query string) []render.Fragment {
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()
	return v.redraw()
}

// Query returns the active search query.
func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *View) redraw() []render.Fragment {
	class := ui.NewClassList(render.CardClass)
	if v.theme != nil {
		ui.ApplyTheme(v.theme(), class)
	}
	frags := render.RenderClassed(filter.Filter(v.repo.Materials(), v.Query()), class.String())
	v.surface.Replace(frags)
	return frags
}

func (v *View) fail(msg string, err error) {
	v.log.WithError(err).Error(msg)
	v.report(msg + ": " + err.Error())
}
