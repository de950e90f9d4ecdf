package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct {
	db DB
}

func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg models.Message) error {
	const query = `
		INSERT INTO messages (id, sender_id, receiver_id, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, msg.ID, msg.SenderID, msg.ReceiverID, msg.Body, msg.SentAt)
	return translateConstraint(err)
}

func (r *MessageRepository) List(ctx context.Context) ([]models.Message, error) {
	const query = `
		SELECT id, sender_id, receiver_id, body, sent_at
		FROM messages
		ORDER BY sent_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Body, &msg.SentAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (r *MessageRepository) GetByID(ctx context.Context, id string) (models.Message, error) {
	const query = `
		SELECT id, sender_id, receiver_id, body, sent_at
		FROM messages
		WHERE id = $1
	`
	var msg models.Message
	if err := r.db.QueryRow(ctx, query, id).Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Body, &msg.SentAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Message{}, ErrMessageNotFound
		}
		return models.Message{}, err
	}
	return msg, nil
}

func (r *MessageRepository) Update(ctx context.Context, id string, msg models.Message) error {
	const query = `
		UPDATE messages
		SET sender_id = $2, receiver_id = $3, body = $4, sent_at = $5
		WHERE id = $1
	`
	cmd, err := r.db.Exec(ctx, query, id, msg.SenderID, msg.ReceiverID, msg.Body, msg.SentAt)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM messages WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMessageNotFound
	}
	return nil
}
