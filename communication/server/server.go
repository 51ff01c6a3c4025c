// Package server is a local Vindinium compatible game server. The caller
// plays hero 1 against server side bots.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"vindinium/bot"
	"vindinium/config"
	"vindinium/game"
	"vindinium/gamemaster"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTurns      = 300
	DefaultMap        = "m1"
	DefaultPlayerName = "player"
	DefaultRetention  = 5 * time.Minute
	// player is the hero id of the HTTP client.
	player = 1
)

type Config struct {
	// BaseURL prefixes play and view URLs. Empty uses the request host.
	BaseURL string
	// PlayerName labels hero 1.
	PlayerName string
	// Bots play heroes 2 to 4 in order.
	Bots      []string
	Tuning    config.Tuning
	Seed      uint64
	RateLimit RateLimitConfig
	// Retention keeps a finished game viewable before it is dropped.
	Retention time.Duration
}

func DefaultConfig() Config {
	return Config{
		PlayerName: DefaultPlayerName,
		Bots:       []string{"miner", "aggressive", "random"},
		Tuning:     config.DefaultTuning(),
		Seed:       1,
		RateLimit:  DefaultRateLimitConfig,
		Retention:  DefaultRetention,
	}
}

type session struct {
	local *gamemaster.Local
	token string
	key   string
	bots  map[int]bot.Bot

	// play serializes the hero move and the bot replies.
	play    sync.Mutex
	retired sync.Once
}

type Server struct {
	cfg     Config
	limiter *ipRateLimiter

	mu       sync.RWMutex
	sessions map[string]*session
	created  uint64
}

func New(cfg Config) *Server {
	return &Server{
		cfg:      cfg,
		limiter:  newIPRateLimiter(cfg.RateLimit),
		sessions: map[string]*session{},
	}
}

// Router builds the HTTP routes. It starts no goroutines.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.With(s.limiter.middleware).Post("/training", s.handleTraining)
		r.Get("/{gameID}", s.handleView)
		r.Get("/{gameID}/watch", s.handleWatch)
		r.Post("/{gameID}/{token}/play", s.handlePlay)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	key := r.PostForm.Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}
	turns := DefaultTurns
	if v := r.PostForm.Get("turns"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "turns must be a positive number", http.StatusBadRequest)
			return
		}
		turns = n
	}
	mapName := r.PostForm.Get("map")
	if mapName == "" {
		mapName = DefaultMap
	}

	sess, err := s.newSession(key, mapName, turns)
	switch {
	case errors.Is(err, gamemaster.ErrUnknownMap), errors.Is(err, bot.ErrUnknownBot):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Msg("failed to create game")
		http.Error(w, "failed to create game", http.StatusInternalServerError)
		return
	}
	gamesStarted.Inc()
	log.Info().Str("game", sess.local.ID()).Str("map", mapName).Int("turns", turns).Msg("training game created")
	writeJSON(w, s.playerState(r, sess))
}

func (s *Server) newSession(key, mapName string, turns int) (*session, error) {
	playerName := s.cfg.PlayerName
	if playerName == "" {
		playerName = DefaultPlayerName
	}
	names := append([]string{playerName}, s.cfg.Bots...)
	id := uuid.NewString()
	local, err := gamemaster.NewLocal(id, mapName, names, turns*gamemaster.Heroes)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.created++
	seed := s.cfg.Seed + s.created*gamemaster.Heroes
	s.mu.Unlock()

	sess := &session{local: local, token: uuid.NewString(), key: key, bots: map[int]bot.Bot{}}
	for i, name := range s.cfg.Bots {
		heroID := player + 1 + i
		if heroID > gamemaster.Heroes {
			break
		}
		b, err := bot.New(name, s.cfg.Tuning, seed+uint64(i))
		if err != nil {
			return nil, err
		}
		if err := b.Start(local.State(heroID)); err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", name, err)
		}
		sess.bots[heroID] = b
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "gameID"))
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if chi.URLParam(r, "token") != sess.token || r.PostForm.Get("key") != sess.key {
		http.Error(w, "invalid token or key", http.StatusForbidden)
		return
	}
	cmd, err := game.ParseCommand(r.PostForm.Get("dir"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.play.Lock()
	defer sess.play.Unlock()
	if err := sess.local.Play(player, cmd); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, gamemaster.ErrNotYourTurn) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	movesPlayed.WithLabelValues("player").Inc()
	sess.replyBots()
	if sess.local.Finished() {
		s.retire(sess)
	}
	writeJSON(w, s.playerState(r, sess))
}

// retire drops a finished session once its retention has passed.
func (s *Server) retire(sess *session) {
	sess.retired.Do(func() {
		id := sess.local.ID()
		if s.cfg.Retention <= 0 {
			s.drop(id)
			return
		}
		time.AfterFunc(s.cfg.Retention, func() { s.drop(id) })
	})
}

func (s *Server) drop(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	log.Debug().Str("game", id).Msg("session dropped")
}

// Sessions counts the games the server still holds.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// replyBots plays the server side heroes until it is the player's turn again.
func (sess *session) replyBots() {
	for !sess.local.Finished() {
		heroID := sess.local.ToMove()
		if heroID == player {
			return
		}
		cmd := game.Stay
		if b, ok := sess.bots[heroID]; ok {
			c, err := b.Move(sess.local.State(heroID))
			if err != nil {
				log.Error().Err(err).Int("hero", heroID).Msg("bot failed, staying")
			} else {
				cmd = c
			}
		}
		if err := sess.local.Play(heroID, cmd); err != nil {
			log.Error().Err(err).Int("hero", heroID).Msg("bot move rejected")
			return
		}
		movesPlayed.WithLabelValues("bot").Inc()
	}
	for _, b := range sess.bots {
		b.End()
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "gameID"))
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, sess.local.State(0))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")
	},
}

// handleWatch streams spectator states as JSON text frames until the game
// ends or the client leaves.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "gameID"))
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	activeWatchers.Inc()
	defer activeWatchers.Dec()

	updates, cancel := sess.local.Watch(64)
	defer cancel()

	// Reads only detect the client closing.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(sess.local.State(0)); err != nil {
		return
	}
	for {
		select {
		case state, open := <-updates:
			if !open {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(state); err != nil {
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) playerState(r *http.Request, sess *session) *game.State {
	base := s.cfg.BaseURL
	if base == "" {
		base = "http://" + r.Host
	}
	base = strings.TrimSuffix(base, "/")
	id := sess.local.ID()

	state := sess.local.State(player)
	state.Token = sess.token
	state.PlayURL = fmt.Sprintf("%s/api/%s/%s/play", base, id, sess.token)
	state.ViewURL = fmt.Sprintf("%s/api/%s", base, id)
	return state
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
