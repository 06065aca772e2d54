// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/versebase"
	"github.com/poiesic/versebase/answer"
)

// chatRequest is the /chat request body.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// chatResponse is the /chat response body.
type chatResponse struct {
	Response    string   `json:"response"`
	Citations   []string `json:"citations,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Intent      string   `json:"intent"`
	SessionID   string   `json:"session_id"`
	LatencyMS   int64    `json:"latency_ms"`
}

// healthResponse is the /health response body.
type healthResponse struct {
	Status     string `json:"status"`
	IndexReady bool   `json:"index_ready"`
}

// serveHTTP runs the chat API until ctx is cancelled.
func serveHTTP(ctx context.Context, assistant *versebase.Assistant, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", chatHandler(assistant))
	mux.HandleFunc("GET /health", healthHandler(assistant))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving chat API", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func chatHandler(assistant *versebase.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		result, err := assistant.Ask(r.Context(), req.Message)
		if err != nil {
			if errors.Is(err, answer.ErrNoAnswer) {
				http.Error(w, "no answer could be produced", http.StatusServiceUnavailable)
				return
			}
			slog.Error("query failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := chatResponse{
			Response:    result.Text,
			Annotations: result.Annotations,
			Intent:      result.Intent.String(),
			SessionID:   req.SessionID,
			LatencyMS:   result.Latency.Milliseconds(),
		}
		for _, ref := range result.Citations {
			resp.Citations = append(resp.Citations, ref.String())
		}
		for _, source := range result.Sources {
			resp.Sources = append(resp.Sources, source.URL)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func healthHandler(assistant *versebase.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthResponse{
			Status:     "ok",
			IndexReady: assistant.Ready(),
		})
	}
}
