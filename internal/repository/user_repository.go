package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"giftfall/api/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, is_premium, premium_expiry_date, image_user, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsPremium,
		&user.PremiumExpiryDate,
		&user.ImageUser,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, name, email, password_hash, is_premium, premium_expiry_date, image_user, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsPremium,
		user.PremiumExpiryDate,
		user.ImageUser,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at`, userColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdatePartial writes only the fields present in the patch. The SET list is
// built dynamically so an absent field never clobbers a stored value.
func (r *UserRepository) UpdatePartial(ctx context.Context, id string, patch models.UserPatch, passwordHash []byte) (models.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.IsPremium != nil {
		appendSet("is_premium", *patch.IsPremium)
	}
	if patch.ImageUser != nil {
		appendSet("image_user", *patch.ImageUser)
	}
	if patch.Password != nil {
		appendSet("password_hash", passwordHash)
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1`, strings.Join(sets, ", "))
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return models.User{}, err
	}
	if cmd.RowsAffected() == 0 {
		return models.User{}, ErrUserNotFound
	}

	return r.GetByID(ctx, id)
}

// SweepExpiredPremium drops the premium flag for users whose expiry has
// passed. Returns the number of downgraded rows.
func (r *UserRepository) SweepExpiredPremium(ctx context.Context) (int64, error) {
	const query = `
		UPDATE users
		SET is_premium = FALSE, updated_at = NOW()
		WHERE is_premium = TRUE AND premium_expiry_date IS NOT NULL AND premium_expiry_date < NOW()
	`
	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
