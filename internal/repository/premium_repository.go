package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var ErrPackageNotFound = errors.New("premium package not found")

type PremiumPackageRepository struct {
	db DB
}

func NewPremiumPackageRepository(db DB) *PremiumPackageRepository {
	return &PremiumPackageRepository{db: db}
}

func (r *PremiumPackageRepository) Create(ctx context.Context, pkg models.PremiumPackage) error {
	const query = `
		INSERT INTO premium_packages (id, name, duration_days, price)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, pkg.ID, pkg.Name, pkg.DurationDays, pkg.Price)
	return err
}

func (r *PremiumPackageRepository) List(ctx context.Context) ([]models.PremiumPackage, error) {
	const query = `SELECT id, name, duration_days, price FROM premium_packages ORDER BY price`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pkgs := make([]models.PremiumPackage, 0)
	for rows.Next() {
		var pkg models.PremiumPackage
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.DurationDays, &pkg.Price); err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, rows.Err()
}

func (r *PremiumPackageRepository) GetByID(ctx context.Context, id string) (models.PremiumPackage, error) {
	const query = `SELECT id, name, duration_days, price FROM premium_packages WHERE id = $1`
	var pkg models.PremiumPackage
	if err := r.db.QueryRow(ctx, query, id).Scan(&pkg.ID, &pkg.Name, &pkg.DurationDays, &pkg.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PremiumPackage{}, ErrPackageNotFound
		}
		return models.PremiumPackage{}, err
	}
	return pkg, nil
}

func (r *PremiumPackageRepository) Update(ctx context.Context, id string, pkg models.PremiumPackage) error {
	const query = `
		UPDATE premium_packages
		SET name = $2, duration_days = $3, price = $4
		WHERE id = $1
	`
	cmd, err := r.db.Exec(ctx, query, id, pkg.Name, pkg.DurationDays, pkg.Price)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *PremiumPackageRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM premium_packages WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}
