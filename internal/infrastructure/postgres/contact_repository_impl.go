package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"contacts-api/internal/domain/entity"
	"contacts-api/internal/domain/repository"
)

const contactColumns = "id, name, surname, phone_number, email, birthday, user_id"

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func scanContact(row pgx.Row, c *entity.Contact) error {
	return row.Scan(&c.ID, &c.Name, &c.Surname, &c.PhoneNumber, &c.Email, &c.Birthday, &c.UserID)
}

func collectContacts(rows pgx.Rows) ([]entity.Contact, error) {
	defer rows.Close()
	out := []entity.Contact{}
	for rows.Next() {
		var c entity.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Ordering by id keeps pages stable for a fixed dataset; callers must not
// assume insertion order beyond that.
func (r *ContactRepository) List(ctx context.Context, ownerID int64, skip, limit int) ([]entity.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

func (r *ContactRepository) FindByName(ctx context.Context, ownerID int64, skip, limit int, name string) ([]entity.Contact, error) {
	return r.findByField(ctx, ownerID, skip, limit, "name", name)
}

func (r *ContactRepository) FindBySurname(ctx context.Context, ownerID int64, skip, limit int, surname string) ([]entity.Contact, error) {
	return r.findByField(ctx, ownerID, skip, limit, "surname", surname)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, ownerID int64, skip, limit int, email string) ([]entity.Contact, error) {
	return r.findByField(ctx, ownerID, skip, limit, "email", email)
}

func (r *ContactRepository) findByField(ctx context.Context, ownerID int64, skip, limit int, field, value string) ([]entity.Contact, error) {
	// field is one of the fixed column names above, never user input
	rows, err := r.pool.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE `+field+` = $1 AND user_id = $2
		ORDER BY id
		OFFSET $3 LIMIT $4
	`, value, ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, contactID int64) (*entity.Contact, error) {
	c := &entity.Contact{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = $1 AND user_id = $2
	`, contactID, ownerID)
	if err := scanContact(row, c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (name, surname, phone_number, email, birthday, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.Name, c.Surname, c.PhoneNumber, c.Email, c.Birthday, c.UserID)
	return row.Scan(&c.ID)
}

func (r *ContactRepository) Update(ctx context.Context, ownerID, contactID int64, c *entity.Contact) (*entity.Contact, error) {
	updated := &entity.Contact{}
	row := r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET name = $1, surname = $2, phone_number = $3, email = $4, birthday = $5
		WHERE id = $6 AND user_id = $7
		RETURNING `+contactColumns+`
	`, c.Name, c.Surname, c.PhoneNumber, c.Email, c.Birthday, contactID, ownerID)
	if err := scanContact(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *ContactRepository) Remove(ctx context.Context, ownerID, contactID int64) (*entity.Contact, error) {
	removed := &entity.Contact{}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM contacts
		WHERE id = $1 AND user_id = $2
		RETURNING `+contactColumns+`
	`, contactID, ownerID)
	if err := scanContact(row, removed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return removed, nil
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
