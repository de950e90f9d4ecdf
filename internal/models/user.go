package models

import "time"

type User struct {
	ID                string     `json:"user_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      []byte     `json:"-"`
	IsPremium         bool       `json:"is_premium"`
	PremiumExpiryDate *time.Time `json:"premium_expiry_date"`
	ImageUser         string     `json:"image_user"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// RefreshToken is the persisted half of the session contract. Only the
// SHA-256 hash of the signed token ever touches the database.
type RefreshToken struct {
	TokenHash []byte
	UserID    string
	CreatedAt time.Time
}

// UserPatch is a partial profile update. A nil field means "leave as is",
// which keeps field presence distinct from a zero value.
type UserPatch struct {
	Name      *string
	IsPremium *bool
	ImageUser *string
	Password  *string
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.IsPremium == nil && p.ImageUser == nil && p.Password == nil
}
