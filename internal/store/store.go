// internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"time"

	"matchtech-assistant/internal/common/errors"
	"matchtech-assistant/internal/common/logger"
)

// Chat is one conversation owned by a user.
type Chat struct {
	ID        int64     `json:"id_chat"`
	UserID    int64     `json:"id_usuario"`
	Title     string    `json:"titulo"`
	CreatedAt time.Time `json:"fecha_creado"`
	UpdatedAt time.Time `json:"fecha_actualizado"`
}

// Message is one user or bot turn within a chat.
type Message struct {
	ID      int64     `json:"id_mensaje"`
	ChatID  int64     `json:"id_chat"`
	Role    string    `json:"rol"`
	Content string    `json:"contenido"`
	SentAt  time.Time `json:"fecha"`
}

// Store persists chats and messages in PostgreSQL. Deletes are soft: rows are
// flagged and filtered out of every read.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db: db,
		logger: log.With(map[string]interface{}{
			"component": "store",
		}),
	}
}

// Ping tests the underlying database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateChat inserts a chat and returns its id.
func (s *Store) CreateChat(ctx context.Context, userID int64, title string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO chats (id_usuario, titulo) VALUES ($1, $2) RETURNING id_chat`,
		userID, title,
	).Scan(&id)
	if err != nil {
		return 0, errors.NewDatabaseInsertFailedError("chats", err)
	}
	return id, nil
}

// ListChats returns a user's non-deleted chats, most recently updated first.
func (s *Store) ListChats(ctx context.Context, userID int64) ([]Chat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id_chat, id_usuario, titulo, fecha_creado, fecha_actualizado
		 FROM chats
		 WHERE id_usuario = $1 AND eliminado = FALSE
		 ORDER BY fecha_actualizado DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_chats", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_chats", err)
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_chats", err)
	}
	return chats, nil
}

// RenameChat updates a chat title and touches its updated timestamp.
func (s *Store) RenameChat(ctx context.Context, chatID int64, title string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE chats SET titulo = $1, fecha_actualizado = CURRENT_TIMESTAMP WHERE id_chat = $2`,
		title, chatID,
	)
	if err != nil {
		return errors.NewQueryExecutionFailedError("rename_chat", err)
	}
	return nil
}

// SoftDeleteChat flags a chat as deleted without removing its rows.
func (s *Store) SoftDeleteChat(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE chats SET eliminado = TRUE, fecha_actualizado = CURRENT_TIMESTAMP WHERE id_chat = $1`,
		chatID,
	)
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete_chat", err)
	}
	return nil
}

// GetChatTitle returns the title of a chat.
func (s *Store) GetChatTitle(ctx context.Context, chatID int64) (string, error) {
	var title string
	err := s.db.QueryRowContext(ctx,
		`SELECT titulo FROM chats WHERE id_chat = $1`,
		chatID,
	).Scan(&title)
	if err == sql.ErrNoRows {
		return "", errors.NewChatNotFoundError(chatID)
	}
	if err != nil {
		return "", errors.NewQueryExecutionFailedError("get_chat_title", err)
	}
	return title, nil
}

// ListMessages returns a chat's non-deleted messages in chronological order.
func (s *Store) ListMessages(ctx context.Context, chatID int64) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id_mensaje, id_chat, rol, contenido, fecha
		 FROM mensajes
		 WHERE id_chat = $1 AND eliminado = FALSE
		 ORDER BY fecha ASC`,
		chatID,
	)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_messages", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.SentAt); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_messages", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_messages", err)
	}
	return messages, nil
}

// SaveMessage inserts a message and touches the parent chat's timestamp.
func (s *Store) SaveMessage(ctx context.Context, chatID int64, role, content string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO mensajes (id_chat, rol, contenido) VALUES ($1, $2, $3) RETURNING id_mensaje`,
		chatID, role, content,
	).Scan(&id)
	if err != nil {
		return 0, errors.NewDatabaseInsertFailedError("mensajes", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE chats SET fecha_actualizado = CURRENT_TIMESTAMP WHERE id_chat = $1`,
		chatID,
	); err != nil {
		s.logger.Warn("failed to touch chat timestamp", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
	}

	return id, nil
}

// CountUserMessages returns how many user-role messages a chat holds.
func (s *Store) CountUserMessages(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM mensajes WHERE id_chat = $1 AND rol = 'user'`,
		chatID,
	).Scan(&count)
	if err != nil {
		return 0, errors.NewQueryExecutionFailedError("count_user_messages", err)
	}
	return count, nil
}
