package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ugaemi/prophunt-server/internal/auth"
	"github.com/ugaemi/prophunt-server/internal/config"
	"github.com/ugaemi/prophunt-server/internal/handler"
	"github.com/ugaemi/prophunt-server/internal/room"
	"github.com/ugaemi/prophunt-server/internal/store"
	"github.com/ugaemi/prophunt-server/internal/ws"
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100
	shutdownTimeout   = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	matchCfg, err := config.LoadMatch(cfg.MatchConfig)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open result store: %w", err)
	}
	defer results.Close()

	seats, err := auth.NewSeatIssuer([]byte(cfg.SeatTokenSecret), cfg.SeatTokenTTL)
	if err != nil {
		return err
	}
	if cfg.SeatTokenSecret == "" {
		slog.Warn("SEAT_TOKEN_SECRET not set, seat tokens will not survive a restart")
	}

	hub := ws.NewHub()
	rm := room.NewManager(matchCfg, results)
	router := handler.NewRouter(rm, seats)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: newMux(hub, rm, results),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr,
			"arena", fmt.Sprintf("%.0fx%.0f", matchCfg.Arena.Width, matchCfg.Arena.Height),
			"tick_rate", matchCfg.TickRate)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	rm.Shutdown()
	hub.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newMux(hub *ws.Hub, rm *room.Manager, results store.ResultStore) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handleHealth(hub, rm, w)
	})
	mux.HandleFunc("/matches", func(w http.ResponseWriter, r *http.Request) {
		handleMatches(results, w, r)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})
	return mux
}

type healthResponse struct {
	Status  string         `json:"status"`
	Rooms   int            `json:"rooms"`
	Clients map[string]int `json:"clients"`
}

func handleHealth(hub *ws.Hub, rm *room.Manager, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Rooms:   rm.RoomCount(),
		Clients: hub.CodecCounts(),
	})
}

// handleMatches lists the most recent finished matches, newest first.
func handleMatches(results store.ResultStore, w http.ResponseWriter, r *http.Request) {
	limit := defaultMatchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxMatchLimit)
	}

	matches, err := results.RecentMatches(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list matches", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if matches == nil {
		matches = []store.MatchRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

// handleWebSocket upgrades the connection. ?codec=msgpack switches the
// client to binary MessagePack frames.
func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	codec := ws.ParseCodec(r.URL.Query().Get("codec"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(uuid.NewString(), codec, hub, conn)
	if !hub.Add(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
