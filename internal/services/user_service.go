package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/repository"
	"github.com/priyankaj04/Gymlogs/pkg/utils"
)

type userStore interface {
	CreateUser(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Update(ctx context.Context, id string, input repository.UpdateUserInput) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type UserService struct {
	users     userStore
	jwtSecret string
}

func NewUserService(users userStore, jwtSecret string) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	account := &models.Account{
		User:         models.User{ID: uuid.NewString(), Email: email, Name: name},
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, account); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(account.ID, utils.RoleUser, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return &account.User, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	account, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !utils.CheckPassword(password, account.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(account.ID, utils.RoleUser, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return &account.User, token, nil
}

func (s *UserService) GetUser(ctx context.Context, actorID, id string) (*models.User, error) {
	if actorID != id {
		return nil, ErrForbidden
	}
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &account.User, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actorID, id string, update models.UserUpdate) (*models.User, error) {
	if actorID != id {
		return nil, ErrForbidden
	}

	input := repository.UpdateUserInput{}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" {
			return nil, ErrInvalidInput
		}
		input.Email = &email
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		input.Name = &name
	}
	if update.Password != nil {
		hash, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		input.PasswordHash = &hash
	}

	account, err := s.users.Update(ctx, id, input)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &account.User, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID != id {
		return ErrForbidden
	}
	return s.users.Delete(ctx, id)
}
