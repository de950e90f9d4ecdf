package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyCompleted    = errors.New("transaction already completed")
)

type TransactionRepository struct {
	db DB
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, buyer_id, seller_id, buyer_item_id, seller_item_id, transaction_date, status, total_amount`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var txn models.Transaction
	if err := row.Scan(
		&txn.ID,
		&txn.BuyerID,
		&txn.SellerID,
		&txn.BuyerItemID,
		&txn.SellerItemID,
		&txn.Date,
		&txn.Status,
		&txn.TotalAmount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, ErrTransactionNotFound
		}
		return models.Transaction{}, err
	}
	return txn, nil
}

func (r *TransactionRepository) Create(ctx context.Context, txn models.Transaction) error {
	const query = `
		INSERT INTO transactions (
			id, buyer_id, seller_id, buyer_item_id, seller_item_id, transaction_date, status, total_amount
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.Exec(ctx, query,
		txn.ID,
		txn.BuyerID,
		txn.SellerID,
		txn.BuyerItemID,
		txn.SellerItemID,
		txn.Date,
		txn.Status,
		txn.TotalAmount,
	)
	return translateConstraint(err)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)
	return scanTransaction(r.db.QueryRow(ctx, query, id))
}

func (r *TransactionRepository) List(ctx context.Context) ([]models.Transaction, error) {
	return r.listWhere(ctx, "", nil)
}

func (r *TransactionRepository) ListByBuyer(ctx context.Context, buyerID string) ([]models.Transaction, error) {
	return r.listWhere(ctx, ` WHERE buyer_id = $1`, []any{buyerID})
}

func (r *TransactionRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.Transaction, error) {
	return r.listWhere(ctx, ` WHERE seller_id = $1`, []any{sellerID})
}

func (r *TransactionRepository) listWhere(ctx context.Context, where string, args []any) ([]models.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions`, transactionColumns) + where + ` ORDER BY transaction_date DESC, id`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]models.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// Complete moves a transaction to Completed and marks both referenced items
// Sold in one database transaction. The row is locked first so two racing
// accepts cannot both pass the status check.
func (r *TransactionRepository) Complete(ctx context.Context, id string) (models.Transaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 FOR UPDATE`, transactionColumns)
	txn, err := scanTransaction(tx.QueryRow(ctx, query, id))
	if err != nil {
		return models.Transaction{}, err
	}
	if txn.Status == models.TransactionStatusCompleted {
		return models.Transaction{}, ErrAlreadyCompleted
	}

	if _, err := tx.Exec(ctx,
		`UPDATE transactions SET status = $2 WHERE id = $1`,
		id, models.TransactionStatusCompleted,
	); err != nil {
		return models.Transaction{}, err
	}
	if err := markItemsSold(ctx, tx, txn.BuyerItemID, txn.SellerItemID); err != nil {
		return models.Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Transaction{}, err
	}

	txn.Status = models.TransactionStatusCompleted
	return txn, nil
}

// Update rewrites the full record. When the resulting status is Completed the
// item-sold cascade applies in the same database transaction; marking an
// already-Sold item Sold again is a no-op.
func (r *TransactionRepository) Update(ctx context.Context, id string, txn models.Transaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		UPDATE transactions
		SET buyer_id = $2, seller_id = $3, buyer_item_id = $4, seller_item_id = $5,
		    transaction_date = $6, status = $7, total_amount = $8
		WHERE id = $1
	`
	cmd, err := tx.Exec(ctx, query,
		id,
		txn.BuyerID,
		txn.SellerID,
		txn.BuyerItemID,
		txn.SellerItemID,
		txn.Date,
		txn.Status,
		txn.TotalAmount,
	)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	if txn.Status == models.TransactionStatusCompleted {
		if err := markItemsSold(ctx, tx, txn.BuyerItemID, txn.SellerItemID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func markItemsSold(ctx context.Context, tx pgx.Tx, itemIDs ...string) error {
	const query = `UPDATE items SET status = $2, updated_at = NOW() WHERE id = ANY($1)`
	_, err := tx.Exec(ctx, query, itemIDs, models.ItemStatusSold)
	return err
}

// SetStatus rewrites just the status column, used by the reactive correction
// on reads and by the reconciliation sweep.
func (r *TransactionRepository) SetStatus(ctx context.Context, id string, status models.TransactionStatus) error {
	const query = `UPDATE transactions SET status = $2 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM transactions WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
