package cmd

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/makampitch/file"
	"github.com/jsphweid/makampitch/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// request bodies above this are rejected
const maxBodyBytes = 64 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the extractor over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &http.Server{
			Addr:              cfg.Server.Bind,
			Handler:           NewRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-cmd.Context().Done()
			_ = srv.Close()
		}()

		logger.Info("serving", slog.String("bind", cfg.Server.Bind))
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/extract", HandleExtract).Methods("POST")
	router.HandleFunc("/settings", handleSettings).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func HandleExtract(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	reqLogger := logger.With(slog.String("request_id", requestID))

	set, err := file.DecodeContourSet(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := newExtractor().Run(r.Context(), set, r.URL.Query().Get("source"))
	if err != nil {
		reqLogger.Warn("extraction failed", slog.Any("error", err))
		status := http.StatusBadRequest
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err.Error())
		return
	}

	reqLogger.Info("extracted",
		slog.Int("contours", len(set.Contours)),
		slog.Int("frames", len(res.Pitch)),
	)
	writeJSON(w, http.StatusOK, model.ExtractResponse{
		RequestID: requestID,
		Pitch:     res.Pitch,
		Settings:  res.Settings,
	})
}

func handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newExtractor().Settings(""))
}
