package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - registers every route of the API.
func NewRouter(handlers *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.Ping)

	mux.HandleFunc("POST /api/evaluate", handlers.Evaluate)
	mux.HandleFunc("POST /api/move", handlers.Move)
	mux.HandleFunc("POST /api/analyze", handlers.Analyze)

	mux.HandleFunc("POST /api/games", handlers.CreateGame)
	mux.HandleFunc("GET /api/games/{id}", handlers.GetGame)
	mux.HandleFunc("POST /api/games/{id}/turn", handlers.MakeTurn)

	return mux
}

// Start - serves the API until ctx is canceled.
func Start(ctx context.Context, logger *slog.Logger, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
