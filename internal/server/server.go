package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"
	"github.com/jmoiron/sqlx"

	"github.com/dukerupert/choreboard/internal/handler"
	"github.com/dukerupert/choreboard/internal/middleware"
	"github.com/dukerupert/choreboard/internal/store"
	ws "github.com/dukerupert/choreboard/internal/websocket"
	"github.com/dukerupert/choreboard/web"
)

// maxBodySize bounds every request body; forms here are tiny.
const maxBodySize = 64 * 1024

// Config carries the settings the router depends on.
type Config struct {
	// AdminPasswordHash enables the admin routes when set.
	AdminPasswordHash string
	// BoardRate limits board creations per second per client IP; 0 disables it.
	BoardRate float64
}

type Server struct {
	db     *sqlx.DB
	cfg    Config
	hub    *ws.Hub
	boardH *handler.Handler
	adminH *handler.AdminHandler
	logger *slog.Logger
}

func New(db *sqlx.DB, cfg Config, logger *slog.Logger) (*Server, error) {
	renderer, err := handler.NewRenderer(web.Templates(), logger.With("component", "render"))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	hub := ws.NewHub(logger.With("component", "websocket"))

	boardStore := store.NewBoardStore(db)
	playerStore := store.NewPlayerStore(db)
	choreStore := store.NewChoreStore(db)
	scoreStore := store.NewScoreStore(db)

	return &Server{
		db:     db,
		cfg:    cfg,
		hub:    hub,
		boardH: handler.New(boardStore, playerStore, choreStore, scoreStore, renderer, hub, logger.With("component", "board")),
		adminH: handler.NewAdminHandler(boardStore, hub, logger.With("component", "admin")),
		logger: logger,
	}, nil
}

// Hub returns the websocket hub used for board updates.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.RealIP,
		rest.Recoverer(s.recoverLogger()),
		rest.Ping,
		rest.SizeLimit(maxBodySize),
		middleware.RequestLogger(s.logger.With("component", "http")),
	)

	router.HandleFunc("GET /health", s.healthHandler)
	router.HandleFiles("/static/", http.FS(web.Static()))

	router.HandleFunc("GET /{$}", s.boardH.Index)
	if s.cfg.BoardRate > 0 {
		router.With(tollbooth.HTTPMiddleware(s.boardLimiter())).HandleFunc("POST /boards", s.boardH.CreateBoard)
	} else {
		router.HandleFunc("POST /boards", s.boardH.CreateBoard)
	}
	router.HandleFunc("GET /boards/{boardId}", s.boardH.ShowBoard)
	router.HandleFunc("GET /boards/{boardId}/ws", ws.HandleWebSocket(s.hub, s.boardH.BoardExists, s.logger.With("component", "websocket")))

	// HTMX fragments
	router.Group().Route(func(frag *routegroup.Bundle) {
		frag.Use(rest.NoCache)

		frag.HandleFunc("GET /boards/{boardId}/players", s.boardH.PlayerList)
		frag.HandleFunc("GET /boards/{boardId}/chores", s.boardH.ChoreList)
		frag.HandleFunc("GET /boards/{boardId}/activity", s.boardH.Activity)

		frag.HandleFunc("POST /boards/{boardId}/players", s.boardH.CreatePlayer)
		frag.HandleFunc("PUT /manage-players/{playerId}", s.boardH.UpdatePlayer)
		frag.HandleFunc("DELETE /manage-players/{playerId}", s.boardH.DeletePlayer)

		frag.HandleFunc("POST /boards/{boardId}/chores", s.boardH.CreateChore)
		frag.HandleFunc("PUT /manage-chores/{choreId}", s.boardH.UpdateChore)
		frag.HandleFunc("DELETE /manage-chores/{choreId}", s.boardH.DeleteChore)

		frag.HandleFunc("POST /do-chore", s.boardH.DoChore)
	})

	if s.cfg.AdminPasswordHash != "" {
		router.Mount("/admin").Route(func(admin *routegroup.Bundle) {
			admin.Use(middleware.RequireAdmin(s.cfg.AdminPasswordHash), rest.NoCache)
			admin.HandleFunc("GET /boards", s.adminH.ListBoards)
			admin.HandleFunc("DELETE /boards/{boardId}", s.adminH.DeleteBoard)
		})
	}

	return router
}

// boardLimiter allows BoardRate board creations per second per client IP.
// RealIP runs first, so RemoteAddr already holds the client address.
func (s *Server) boardLimiter() *limiter.Limiter {
	lmt := tollbooth.NewLimiter(s.cfg.BoardRate, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0})
	lmt.SetMessage("too many boards created, try again later")
	return lmt
}

// recoverLogger adapts the slog logger for rest.Recoverer.
func (s *Server) recoverLogger() lgr.L {
	logger := s.logger.With("component", "recover")
	return lgr.Func(func(format string, args ...any) {
		logger.Error(fmt.Sprintf(format, args...))
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("health check", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
