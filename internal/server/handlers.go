// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"matchtech-assistant/internal/export"
	"matchtech-assistant/internal/store"
)

const defaultChatTitle = "Nuevo chat"

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// readBody reads and validates a request body against a schema. A validation
// failure is reported to the client; callers stop on (nil, false).
func (s *Server) readBody(w http.ResponseWriter, req *http.Request, schema string) ([]byte, bool) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "No se pudo leer el cuerpo de la petición")
		return nil, false
	}
	if err := validateBody(body, schema); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return body, true
}

func pathID(req *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(req, name), 10, 64)
}

func (s *Server) handleCreateChat(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req, createChatSchema)
	if !ok {
		return
	}

	var input struct {
		UserID int64  `json:"id_usuario"`
		Title  string `json:"titulo"`
	}
	_ = json.Unmarshal(body, &input)
	if input.Title == "" {
		input.Title = defaultChatTitle
	}

	id, err := s.store.CreateChat(req.Context(), input.UserID, input.Title)
	if err != nil {
		s.logger.Error("create chat failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al crear chat")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id_chat": id,
		"titulo":  input.Title,
		"mensaje": "Chat creado exitosamente",
	})
}

func (s *Server) handleListChats(w http.ResponseWriter, req *http.Request) {
	userID, err := pathID(req, "idUsuario")
	if err != nil {
		respondError(w, http.StatusBadRequest, "id_usuario inválido")
		return
	}

	chats, err := s.store.ListChats(req.Context(), userID)
	if err != nil {
		s.logger.Error("list chats failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al obtener chats")
		return
	}
	if chats == nil {
		chats = []store.Chat{}
	}

	respondJSON(w, http.StatusOK, chats)
}

func (s *Server) handleRenameChat(w http.ResponseWriter, req *http.Request) {
	chatID, err := pathID(req, "idChat")
	if err != nil {
		respondError(w, http.StatusBadRequest, "id_chat inválido")
		return
	}

	body, ok := s.readBody(w, req, renameChatSchema)
	if !ok {
		return
	}

	var input struct {
		Title string `json:"titulo"`
	}
	_ = json.Unmarshal(body, &input)

	if err := s.store.RenameChat(req.Context(), chatID, input.Title); err != nil {
		s.logger.Error("rename chat failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al actualizar chat")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"mensaje": "Título actualizado"})
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, req *http.Request) {
	chatID, err := pathID(req, "idChat")
	if err != nil {
		respondError(w, http.StatusBadRequest, "id_chat inválido")
		return
	}

	if err := s.store.SoftDeleteChat(req.Context(), chatID); err != nil {
		s.logger.Error("delete chat failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al eliminar chat")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"mensaje": "Chat eliminado"})
}

func (s *Server) handleListMessages(w http.ResponseWriter, req *http.Request) {
	chatID, err := pathID(req, "idChat")
	if err != nil {
		respondError(w, http.StatusBadRequest, "id_chat inválido")
		return
	}

	messages, err := s.store.ListMessages(req.Context(), chatID)
	if err != nil {
		s.logger.Error("list messages failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al obtener mensajes")
		return
	}
	if messages == nil {
		messages = []store.Message{}
	}

	respondJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSaveMessage(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req, saveMessageSchema)
	if !ok {
		return
	}

	var input struct {
		ChatID  int64  `json:"id_chat"`
		Content string `json:"contenido"`
		Role    string `json:"rol"`
	}
	_ = json.Unmarshal(body, &input)
	if input.Role == "" {
		input.Role = "user"
	}

	ctx := req.Context()

	messageID, err := s.store.SaveMessage(ctx, input.ChatID, input.Role, input.Content)
	if err != nil {
		s.logger.Error("save message failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al guardar mensaje")
		return
	}

	var reply string
	if input.Role == "user" {
		reply = s.assistant.Answer(ctx, input.Content)

		if _, err := s.store.SaveMessage(ctx, input.ChatID, "bot", reply); err != nil {
			s.logger.Error("save bot reply failed", map[string]interface{}{"error": err.Error()})
			respondError(w, http.StatusInternalServerError, "Error al guardar mensaje")
			return
		}

		if count, err := s.store.CountUserMessages(ctx, input.ChatID); err == nil && count == 1 {
			s.autoTitleChat(ctx, input.ChatID, input.Content)
		}
	}

	title, err := s.store.GetChatTitle(ctx, input.ChatID)
	var titlePayload interface{}
	if err == nil {
		titlePayload = title
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"respuesta":  reply,
		"id_mensaje": messageID,
		"tituloChat": titlePayload,
		"id_chat":    input.ChatID,
	})
}

// autoTitleChat names a chat after its first user message, asking the
// assistant for a short title and falling back to a prefix of the message.
func (s *Server) autoTitleChat(ctx context.Context, chatID int64, content string) {
	prompt := fmt.Sprintf("Genera un título de máximo 4 palabras para esta conversación:\n%q\nResponde solo el título.", content)

	title := strings.TrimSpace(s.assistant.Answer(ctx, prompt))
	title = truncateRunes(title, 40)
	if title == "" {
		title = truncateRunes(content, 20) + "..."
	}

	if err := s.store.RenameChat(ctx, chatID, title); err != nil {
		s.logger.Warn("auto title failed", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
		return
	}

	s.logger.Info("chat title generated", map[string]interface{}{
		"chatId": chatID,
		"title":  title,
	})
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func (s *Server) handleOneShotChat(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req, oneShotChatSchema)
	if !ok {
		return
	}

	var input struct {
		Message string `json:"mensaje"`
	}
	_ = json.Unmarshal(body, &input)

	reply := s.assistant.Answer(req.Context(), input.Message)

	respondJSON(w, http.StatusOK, map[string]string{"respuesta": reply})
}

func (s *Server) handleExportPDF(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req, exportPDFSchema)
	if !ok {
		return
	}

	var input struct {
		Title   string `json:"titulo"`
		Content string `json:"contenido"`
	}
	_ = json.Unmarshal(body, &input)

	pdf, err := export.RenderChatPDF(input.Title, input.Content)
	if err != nil {
		s.logger.Error("pdf render failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al generar PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", input.Title+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) handleSendEmail(w http.ResponseWriter, req *http.Request) {
	body, ok := s.readBody(w, req, sendEmailSchema)
	if !ok {
		return
	}

	var input struct {
		Email   string `json:"email"`
		Title   string `json:"titulo"`
		Content string `json:"contenido"`
	}
	_ = json.Unmarshal(body, &input)

	if s.mailer == nil {
		respondError(w, http.StatusServiceUnavailable, "El envío de correo no está habilitado")
		return
	}

	pdf, err := export.RenderChatPDF(input.Title, input.Content)
	if err != nil {
		s.logger.Error("pdf render failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "Error al generar PDF")
		return
	}

	if err := s.mailer.SendChatPDF(req.Context(), input.Email, input.Title, pdf); err != nil {
		s.logger.Error("send email failed", map[string]interface{}{"error": err.Error()})
		respondError(w, http.StatusInternalServerError, "No se pudo enviar el correo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"mensaje": "Correo enviado"})
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	if err := s.store.Ping(req.Context()); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "Error",
			"db":     "Falló",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "Servidor OK",
		"modelo": s.modelID,
		"db":     "Conectada",
	})
}
