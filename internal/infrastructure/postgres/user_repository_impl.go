package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-api/internal/domain/entity"
	"contacts-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, confirmed, created_at
	`, u.Username, u.Email, u.Password, u.Avatar)

	return row.Scan(&u.ID, &u.Confirmed, &u.CreatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password, COALESCE(avatar, ''), COALESCE(refresh_token, ''), confirmed, created_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Avatar,
		&u.RefreshToken, &u.Confirmed, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET refresh_token = NULLIF($1, '') WHERE id = $2
	`, token, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, email string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET confirmed = TRUE WHERE email = $1
	`, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET avatar = $1 WHERE id = $2
	`, avatarURL, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
