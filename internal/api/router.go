/**
 * @description
 * This file sets up the HTTP router for the outreach-service. It defines the API
 * endpoints, associates them with their corresponding handlers, and applies any
 * necessary middleware, such as for authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for browser clients.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Routes creates and returns the router for the outreach service.
func Routes(h *Handlers, jwtSecret string, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	// Callbacks from external collaborators; authenticated by their own tokens.
	r.Post("/api/provider/auth/notify", h.HandleAccountNotify)
	r.Post("/api/provider/auth/notify-reconnect", h.HandleNotifyReconnect)

	// Group routes that require an authenticated session.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		r.Get("/api/provider", h.HandleListProviders)
		r.Post("/api/provider/auth", h.HandleCreateAuthLink)
		r.Post("/api/provider/unlink", h.HandleUnlinkProvider)
		r.Post("/api/provider/message", h.HandleDispatchMessage)
		r.Post("/api/workflow", h.HandleCreateWorkflow)
		r.Post("/api/workflow/send/message", h.HandleDispatchMessage)
		r.Post("/api/scout-screening", h.HandleCreateScoutScreening)
		r.Post("/api/leads/import", h.HandleImportLeads)
		r.Post("/api/assistant/chat", h.HandleAssistantChat)
		r.Post("/api/audio/delete", h.HandleDeleteRecording)

		r.Get("/api/voice/models", h.HandleVoiceModels)
		r.Get("/api/voice/voices", h.HandleVoiceVoices)
	})

	return r
}
