// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"matchtech-assistant/internal/common/logger"
	"matchtech-assistant/internal/store"
)

// Assistant answers one user message; it never fails.
type Assistant interface {
	Answer(ctx context.Context, question string) string
}

// Store is the persistence surface the handlers depend on.
type Store interface {
	Ping(ctx context.Context) error
	CreateChat(ctx context.Context, userID int64, title string) (int64, error)
	ListChats(ctx context.Context, userID int64) ([]store.Chat, error)
	RenameChat(ctx context.Context, chatID int64, title string) error
	SoftDeleteChat(ctx context.Context, chatID int64) error
	GetChatTitle(ctx context.Context, chatID int64) (string, error)
	ListMessages(ctx context.Context, chatID int64) ([]store.Message, error)
	SaveMessage(ctx context.Context, chatID int64, role, content string) (int64, error)
	CountUserMessages(ctx context.Context, chatID int64) (int, error)
}

// Mailer delivers a chat transcript PDF by email.
type Mailer interface {
	SendChatPDF(ctx context.Context, to, title string, pdf []byte) error
}

// Server wires the assistant, the chat store and the export collaborators
// behind the HTTP API.
type Server struct {
	store     Store
	assistant Assistant
	mailer    Mailer // nil when email delivery is disabled
	modelID   string
	logger    logger.Logger
}

func New(st Store, as Assistant, mailer Mailer, modelID string, log logger.Logger) *Server {
	return &Server{
		store:     st,
		assistant: as,
		mailer:    mailer,
		modelID:   modelID,
		logger: log.With(map[string]interface{}{
			"component": "http",
		}),
	}
}

// Router builds the chi router with CORS, request logging and all routes.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		MaxAge:           300,
		AllowCredentials: false,
	}))
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Post("/api/chats", s.handleCreateChat)
	r.Get("/api/chats/{idUsuario}", s.handleListChats)
	r.Put("/api/chats/{idChat}", s.handleRenameChat)
	r.Delete("/api/chats/{idChat}", s.handleDeleteChat)

	r.Get("/api/mensajes/{idChat}", s.handleListMessages)
	r.Post("/api/mensajes", s.handleSaveMessage)

	r.Post("/api/chat", s.handleOneShotChat)
	r.Post("/api/pdf", s.handleExportPDF)
	r.Post("/api/enviarCorreo", s.handleSendEmail)

	r.Get("/health", s.handleHealth)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "Endpoint no encontrado"})
	})

	return r
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		next.ServeHTTP(w, req)

		s.logger.Info("request handled", map[string]interface{}{
			"requestId": requestID,
			"method":    req.Method,
			"path":      req.URL.Path,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

// recoverer converts handler panics into the generic 500 envelope.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic", map[string]interface{}{
					"path":  req.URL.Path,
					"panic": rec,
				})
				respondJSON(w, http.StatusInternalServerError, map[string]string{
					"error":   "Error interno del servidor",
					"mensaje": "Algo salió mal.",
				})
			}
		}()
		next.ServeHTTP(w, req)
	})
}
