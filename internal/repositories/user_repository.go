package repository

import (
	"context"
	"database/sql"

	"github.com/poshakbd/storefront/internal/models"
	"github.com/poshakbd/storefront/internal/utils"
)

type UserRepository interface {
	// UpsertUser creates or refreshes the profile keyed by the provider uid.
	// created reports whether this was the user's first sign-in.
	UpsertUser(ctx context.Context, user *models.User) (created bool, err error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) UpsertUser(ctx context.Context, user *models.User) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// xmax = 0 only on freshly inserted rows, which tells insert from update
	query := `
		INSERT INTO users (id, uid, name, email, photo_url, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (uid)
		DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, photo_url = EXCLUDED.photo_url, updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`

	var created bool

	err := r.DB.QueryRowContext(dbCtx, query, user.UID, user.Name, user.Email, user.PhotoURL).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &created)
	if err != nil {
		return false, err
	}

	return created, nil
}

func (r *userRepository) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `
		SELECT id, uid, name, email, photo_url, created_at, updated_at
		FROM users
		WHERE uid = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, uid).
		Scan(&user.ID, &user.UID, &user.Name, &user.Email, &user.PhotoURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}
