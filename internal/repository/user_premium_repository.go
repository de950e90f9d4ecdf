package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var ErrSubscriptionNotFound = errors.New("premium subscription not found")

// UserPremiumRepository links users to purchased premium packages and their
// validity window.
type UserPremiumRepository struct {
	db DB
}

func NewUserPremiumRepository(db DB) *UserPremiumRepository {
	return &UserPremiumRepository{db: db}
}

func (r *UserPremiumRepository) Create(ctx context.Context, sub models.UserPremiumPackage) error {
	const query = `
		INSERT INTO user_premium_packages (id, user_id, package_id, purchase_date, expiry_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, sub.ID, sub.UserID, sub.PackageID, sub.PurchaseDate, sub.ExpiryDate)
	return translateConstraint(err)
}

func (r *UserPremiumRepository) List(ctx context.Context) ([]models.UserPremiumPackage, error) {
	const query = `
		SELECT id, user_id, package_id, purchase_date, expiry_date
		FROM user_premium_packages
		ORDER BY purchase_date DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]models.UserPremiumPackage, 0)
	for rows.Next() {
		var sub models.UserPremiumPackage
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.PackageID, &sub.PurchaseDate, &sub.ExpiryDate); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *UserPremiumRepository) GetByID(ctx context.Context, id string) (models.UserPremiumPackage, error) {
	const query = `
		SELECT id, user_id, package_id, purchase_date, expiry_date
		FROM user_premium_packages
		WHERE id = $1
	`
	var sub models.UserPremiumPackage
	if err := r.db.QueryRow(ctx, query, id).Scan(&sub.ID, &sub.UserID, &sub.PackageID, &sub.PurchaseDate, &sub.ExpiryDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.UserPremiumPackage{}, ErrSubscriptionNotFound
		}
		return models.UserPremiumPackage{}, err
	}
	return sub, nil
}

func (r *UserPremiumRepository) Update(ctx context.Context, id string, sub models.UserPremiumPackage) error {
	const query = `
		UPDATE user_premium_packages
		SET user_id = $2, package_id = $3, purchase_date = $4, expiry_date = $5
		WHERE id = $1
	`
	cmd, err := r.db.Exec(ctx, query, id, sub.UserID, sub.PackageID, sub.PurchaseDate, sub.ExpiryDate)
	if err != nil {
		return translateConstraint(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *UserPremiumRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM user_premium_packages WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
