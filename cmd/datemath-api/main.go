package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/mmrzaf/datemath/internal/api"
	"github.com/mmrzaf/datemath/internal/app"
	"github.com/mmrzaf/datemath/internal/config"
	"github.com/mmrzaf/datemath/internal/infra/repos/history"
	"github.com/mmrzaf/datemath/internal/logging"
)

func main() {
	cfg := config.Load()

	tzName := flag.String("tz", cfg.TZ, "Default time zone for rounding and results")
	dbDSN := flag.String("db", cfg.DBDSN, "History database DSN (PostgreSQL); empty uses sqlite")
	historyDB := flag.String("history-db", cfg.HistoryDB, "SQLite history database path")
	bindAddr := flag.String("bind", cfg.BindAddr, "Bind address")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	historyLimit := flag.Int("history-limit", cfg.HistoryLimit, "Default history page size")
	flag.Parse()

	logger := logging.NewLogger(*logLevel).WithComponent("api_main")

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		logger.Fatalw("startup.failed", map[string]any{"error": err.Error(), "stage": "load_location", "tz": *tzName})
	}

	var historyRepo history.Repository
	if *dbDSN != "" {
		historyRepo = history.NewPostgresRepository(*dbDSN)
	} else {
		historyRepo = history.NewSQLiteRepository(*historyDB)
	}
	if err := historyRepo.Init(); err != nil {
		logger.Fatalw("startup.failed", map[string]any{"error": err.Error(), "stage": "init_history_repo"})
	}

	evalService := app.NewEvalService(loc, historyRepo, logging.NewLogger(*logLevel).WithComponent("eval"))
	handler := api.NewHandler(evalService, *historyLimit)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/eval", handler.Eval)
	mux.HandleFunc("GET /api/v1/units", handler.ListUnits)
	mux.HandleFunc("GET /api/v1/history", handler.ListHistory)
	mux.HandleFunc("GET /api/v1/history/{id}", handler.GetEvaluation)

	logger.Infow("startup.listening", map[string]any{"bind": *bindAddr, "tz": loc.String()})
	if err := http.ListenAndServe(*bindAddr, loggingMiddleware(logging.NewLogger(*logLevel).WithComponent("http"), mux)); err != nil {
		logger.Fatalw("startup.failed", map[string]any{"error": err.Error(), "stage": "listen"})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		fields := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": time.Since(started).Milliseconds(),
			"remote":      r.RemoteAddr,
		}
		if sw.status >= 500 {
			logger.Errorw("request.completed", fields)
			return
		}
		if sw.status >= 400 {
			logger.Warnw("request.completed", fields)
			return
		}
		logger.Infow("request.completed", fields)
	})
}
