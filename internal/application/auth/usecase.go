package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dcamposl/gestock-api/internal/application/dto"
	"github.com/dcamposl/gestock-api/internal/domain"
	"github.com/dcamposl/gestock-api/internal/domain/repository"
	"github.com/dcamposl/gestock-api/pkg/jwt"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// UseCase casos de uso de autenticación: login y validación de token.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica username/password, actualiza el último acceso y emite un
// JWT HS256 con validez fija. Usuario inexistente, inactivo o password
// incorrecto fallan todos con el mismo ErrUnauthorized: la respuesta no
// revela cuál de las tres condiciones falló.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido: usuario inexistente o inactivo")
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido: password incorrecto")
		return nil, domain.ErrUnauthorized
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Email, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login exitoso")
	return &dto.LoginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Token:    token,
	}, nil
}

// ValidateToken devuelve true solo si el token parsea, la firma es correcta
// y no está expirado. Cualquier fallo se traga y produce false.
func (uc *UseCase) ValidateToken(token string) bool {
	_, err := jwt.Parse(uc.jwtCfg.Secret, token)
	return err == nil
}
