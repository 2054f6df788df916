package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/models"
)

type UpdateUserInput struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, account.ID, account.Email, account.Name, account.PasswordHash).
		Scan(&account.CreatedAt, &account.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) Update(ctx context.Context, id string, input UpdateUserInput) (*models.Account, error) {
	query := `
		UPDATE users
		SET email = COALESCE($1, email),
			name = COALESCE($2, name),
			password_hash = COALESCE($3, password_hash),
			updated_at = NOW()
		WHERE id = $4
		RETURNING id, email, name, password_hash, created_at, updated_at
	`
	return scanAccount(r.db.QueryRow(ctx, query, input.Email, input.Name, input.PasswordHash, id))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
