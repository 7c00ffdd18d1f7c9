package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fionn/xjdp"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON proxy over the catalog",
	Long:  "Serves the catalog over local HTTP, with markers, features, timeline and global statistics memoized after their first fetch.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		mux := buildMux(newCatalog())

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           withRequestLog(mux),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildMux wires the proxy routes onto a catalog.
func buildMux(catalog *xjdp.Catalog) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": xjdp.Version})
	})

	mux.HandleFunc("GET /markers", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := queryCategory(w, r)
		if !ok {
			return
		}
		markers, err := catalog.Markers(r.Context(), cat)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, markers)
	})

	mux.HandleFunc("GET /features", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := queryCategory(w, r)
		if !ok {
			return
		}
		features := []*xjdp.Feature{}
		it := catalog.Features(r.Context(), cat)
		for it.Next() {
			features = append(features, it.Feature())
		}
		if err := it.Err(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, features)
	})

	mux.HandleFunc("GET /features/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			http.Error(w, `{"error":"invalid feature ID"}`, http.StatusBadRequest)
			return
		}
		f, err := catalog.FeatureByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)
	})

	mux.HandleFunc("GET /timeline", func(w http.ResponseWriter, r *http.Request) {
		events, err := catalog.Client().Timeline(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	})

	mux.HandleFunc("GET /global", func(w http.ResponseWriter, r *http.Request) {
		stats, err := catalog.Client().Global(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	return mux
}

// queryCategory reads the category query parameter, defaulting to camp.
// On an unknown value it writes a 400 and reports false.
func queryCategory(w http.ResponseWriter, r *http.Request) (xjdp.Category, bool) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		raw = "camp"
	}
	cat, err := xjdp.ParseCategory(raw)
	if err != nil {
		http.Error(w, `{"error":"unknown category"}`, http.StatusBadRequest)
		return "", false
	}
	return cat, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps catalog errors onto statuses: unknown IDs become 404,
// upstream failures and undecodable upstream bodies 502, the rest 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var reqErr *xjdp.RequestError
	var malformed *xjdp.MalformedResponseError
	switch {
	case errors.Is(err, xjdp.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &reqErr), errors.As(err, &malformed):
		status = http.StatusBadGateway
	}
	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// withRequestLog tags each request with an ID and logs it on completion.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		zap.L().Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
