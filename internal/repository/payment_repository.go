package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository struct {
	db DB
}

func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment models.Payment) error {
	const query = `
		INSERT INTO payments (id, user_id, payment_method, amount, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.UserID, payment.PaymentMethod, payment.Amount, payment.Status)
	return translateConstraint(err)
}

// List joins the paying user's display fields onto each row.
func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	const query = `
		SELECT p.id, p.user_id, p.payment_method, p.amount, p.status, u.name, u.email
		FROM payments p
		JOIN users u ON p.user_id = u.id
		ORDER BY p.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.PaymentMethod,
			&payment.Amount,
			&payment.Status,
			&payment.UserName,
			&payment.UserEmail,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (models.Payment, error) {
	const query = `
		SELECT id, user_id, payment_method, amount, status
		FROM payments
		WHERE id = $1
	`
	var payment models.Payment
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.PaymentMethod,
		&payment.Amount,
		&payment.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return payment, nil
}

func (r *PaymentRepository) Update(ctx context.Context, id string, payment models.Payment) error {
	const query = `
		UPDATE payments
		SET user_id = $2, payment_method = $3, amount = $4, status = $5
		WHERE id = $1
	`
	cmd, err := r.db.Exec(ctx, query, id, payment.UserID, payment.PaymentMethod, payment.Amount, payment.Status)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM payments WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
