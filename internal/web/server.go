// ABOUTME: HTTP surface for browsing and submitting materials.
// ABOUTME: Routes with chi and streams live search over a websocket.

package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/harper/materials/internal/app"
	"github.com/harper/materials/internal/filter"
	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/render"
	"github.com/harper/materials/internal/repository"
	"github.com/harper/materials/internal/ui"
	"github.com/sirupsen/logrus"
)

// Server serves the materials page and API.
type Server struct {
	repo   *repository.Repository
	themes ui.ThemeStore
	log    logrus.FieldLogger

	mu    sync.Mutex
	state ui.ViewState

	upgrader websocket.Upgrader
	router   chi.Router
}

// NewServer builds the router. state is the initial view state; changes
// are written back to themes when it is non-nil.
func NewServer(repo *repository.Repository, themes ui.ThemeStore, state ui.ViewState, timeout time.Duration, log logrus.FieldLogger) *Server {
	s := &Server{
		repo:   repo,
		themes: themes,
		state:  state,
		log:    log.WithField("component", "web"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Group(func(r chi.Router) {
		if timeout > 0 {
			r.Use(middleware.Timeout(timeout))
		}
		r.Get("/", s.handleIndex)
		r.Post("/materials", s.handleSubmit)
		r.Post("/theme", s.handleTheme)
		r.Get("/api/materials", s.handleAPIList)
	})
	// Websocket sessions outlive the request timeout.
	r.Get("/ws", s.handleWS)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) viewState() ui.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf render.Buffer
	banner := r.URL.Query().Get("error")
	view := s.newView(&buf, func(msg string) { banner = msg })

	// Every page load reads the stores again so writes from other
	// processes show up.
	_ = view.Start(r.Context())
	frags := view.Search(r.URL.Query().Get("q"))
	s.renderPage(w, http.StatusOK, view.Query(), banner, frags)
}

func (s *Server) newView(surface render.Surface, report app.Reporter) *app.View {
	return app.NewView(s.repo, surface, report, s.log).WithTheme(s.viewState)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, query, errMsg string, frags []render.Fragment) {
	data := newPageData(s.viewState(), query, errMsg, frags)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var buf render.Buffer
	var banner string
	view := s.newView(&buf, func(msg string) { banner = msg })

	if err := r.ParseForm(); err != nil {
		view.Search("")
		s.renderPage(w, http.StatusBadRequest, "", "Invalid form submission", buf.Fragments())
		return
	}
	form := models.Form{
		Contributor:  r.PostForm.Get("contributor"),
		ResourceName: r.PostForm.Get("resourceName"),
		Link:         r.PostForm.Get("link"),
		Tags:         r.PostForm.Get("tags"),
	}

	if _, err := view.Submit(r.Context(), form); err != nil {
		var persistErr *repository.PersistError
		if errors.As(err, &persistErr) {
			s.renderPage(w, http.StatusInternalServerError, "", banner, buf.Fragments())
			return
		}
		// Persisted, but the reload failed; the page shows what is in memory.
		http.Redirect(w, r, "/?error="+url.QueryEscape(banner), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.state = s.state.Toggled()
	state := s.state
	s.mu.Unlock()

	if err := ui.SaveViewState(s.themes, state); err != nil {
		s.log.WithError(err).Warn("persist theme")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	ms := filter.Filter(s.repo.Materials(), r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ms); err != nil {
		s.log.WithError(err).Error("encode materials")
	}
}

type searchMessage struct {
	Query string `json:"query"`
}

type fragmentsMessage struct {
	HTML  string `json:"html"`
	Count int    `json:"count"`
}

// handleWS answers every query message with the fragments for the live
// collection filtered by it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer func() { _ = conn.Close() }()

	surface := &wsSurface{conn: conn}
	view := s.newView(surface, nil)
	for {
		var msg searchMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Debug("websocket read")
			}
			return
		}
		view.Search(msg.Query)
		if surface.err != nil {
			s.log.WithError(surface.err).Debug("websocket write")
			return
		}
	}
}

// wsSurface mounts fragments by sending them to the browser, which swaps
// the list contents.
type wsSurface struct {
	conn *websocket.Conn
	err  error
}

func (ws *wsSurface) Replace(frags []render.Fragment) {
	ws.err = ws.conn.WriteJSON(fragmentsMessage{HTML: render.Join(frags), Count: len(frags)})
}
