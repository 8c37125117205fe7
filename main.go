// Command byline-relay is the main entrypoint for the chat relay and byline
// extraction API. It:
//   - Loads configuration and initializes structured logging.
//   - Optionally connects to Postgres (chat transcripts) and Redis (byline
//     cache); both features are disabled when unconfigured.
//   - Starts transcript recorder sessions for any configured rooms.
//   - Exposes the HTTP server: /byline, /chat/{room}/sse, /chat/{room}/ws,
//     /healthz, /readyz, /status, /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // G108: pprof endpoints enabled only when ENABLE_PPROF=1
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/byline-relay/byline"
	"github.com/onnwee/byline-relay/bylinecache"
	"github.com/onnwee/byline-relay/config"
	"github.com/onnwee/byline-relay/db"
	"github.com/onnwee/byline-relay/mirror"
	"github.com/onnwee/byline-relay/relay"
	"github.com/onnwee/byline-relay/server"
	"github.com/onnwee/byline-relay/telemetry"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT")) // text | json
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", slog.String("level", lvl.String()))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("byline-relay", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	// Optional transcript store
	var database *sql.DB
	if cfg.DBDsn != "" {
		database, err = db.Connect(cfg.DBDsn)
		if err != nil {
			slog.Error("failed to open db", slog.Any("err", err))
			os.Exit(1)
		}
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("failed to close database", slog.Any("err", err))
			}
		}()
		slog.Info("running database migrations", slog.String("component", "db_migrate"))
		if err := db.RunMigrations(database); err != nil {
			slog.Error("failed to migrate db", slog.Any("err", err))
			os.Exit(1)
		}
	} else {
		slog.Info("transcript store disabled (DB_DSN not set)")
	}

	// Optional byline cache
	cache := bylinecache.New(cfg.RedisAddr, cfg.BylineCacheTTL)
	if cache == nil {
		slog.Info("byline cache disabled (REDIS_ADDR not set)")
	} else {
		defer func() {
			if err := cache.Close(); err != nil {
				slog.Error("failed to close cache", slog.Any("err", err))
			}
		}()
	}

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connector := func() relay.Connector { return relay.NewTwitchConnector() }

	// Transcript recorders: a standing session per configured room, so chat
	// is archived even with no browser connected.
	if database != nil {
		for _, room := range splitRooms(os.Getenv("TRANSCRIPT_ROOMS")) {
			rec := relay.NewRecorder(database, room)
			rec.Start(ctx)
			session := relay.NewSession(room, connector)
			go session.Run(ctx)
			go func(room string) {
				for ev := range session.Events() {
					rec.Enqueue(ev)
				}
				slog.Info("transcript session ended", slog.String("room", room))
			}(room)
			slog.Info("transcript recorder started", slog.String("room", room))
		}
	}

	pipeline := byline.New(cfg.BylineMaxLen)
	mirrorClient := mirror.NewClient(cfg.MirrorBaseURL, cfg.MirrorFetchTimeout)
	handlers := server.NewHandlers(pipeline, mirrorClient, cache, database, connector)

	// Enable pprof profiling endpoints in debug mode (ENABLE_PPROF=1)
	if os.Getenv("ENABLE_PPROF") == "1" {
		pprofAddr := os.Getenv("PPROF_ADDR")
		if pprofAddr == "" {
			pprofAddr = "localhost:6060"
		}
		go func() {
			slog.Info("pprof profiling enabled", slog.String("addr", pprofAddr))
			srv := &http.Server{
				Addr:              pprofAddr,
				Handler:           nil, // default mux exposes /debug/pprof
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("pprof server error", slog.Any("err", err))
			}
		}()
	}

	go func() {
		if err := server.Start(ctx, handlers, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Block until shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")
}

func splitRooms(v string) []string {
	var rooms []string
	for _, r := range strings.Split(v, ",") {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			rooms = append(rooms, r)
		}
	}
	return rooms
}
