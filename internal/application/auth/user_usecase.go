package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

// UserUseCase CRUD de usuarios con unicidad de username y email (sensible a
// mayúsculas) en alta y en actualización.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// Create crea un usuario con el password hasheado con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkUniqueness(ctx, in.Username, in.Email, ""); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", in.Role).Msg("usuario creado")
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

// Update actualiza un usuario. El hash solo se rota si viene un password
// nuevo; username y email deben seguir siendo únicos frente a los demás.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkUniqueness(ctx, in.Username, in.Email, id); err != nil {
		return nil, err
	}
	user.Username = in.Username
	user.Email = in.Email
	user.Role = role
	user.IsActive = in.IsActive
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Borrado duro, sin verificación de dependencias.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) checkUniqueness(ctx context.Context, username, email, excludeID string) error {
	exists, err := uc.repo.UsernameExists(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicate
	}
	exists, err = uc.repo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicate
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
