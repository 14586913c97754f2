// Command create-admin crea el primer usuario SuperAdmin. No existe registro
// público en la API, así que este comando es la puerta de entrada inicial.
//
// Uso:
//
//	create-admin -username admin -email admin@example.com -password 's3cr3t...'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcamposl/gestock-api/internal/domain/entity"
	"github.com/dcamposl/gestock-api/internal/infrastructure/postgres"
	"github.com/dcamposl/gestock-api/pkg/config"
	"github.com/dcamposl/gestock-api/pkg/logger"
)

func main() {
	username := flag.String("username", "", "nombre de usuario del SuperAdmin")
	email := flag.String("email", "", "email del SuperAdmin")
	password := flag.String("password", "", "contraseña (mínimo 8 caracteres)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: create-admin -username <u> -email <e> -password <p>")
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "la contraseña debe tener al menos 8 caracteres")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	if exists, err := userRepo.UsernameExists(ctx, *username, ""); err != nil {
		log.Fatal().Err(err).Msg("verificar username")
	} else if exists {
		log.Fatal().Str("username", *username).Msg("el username ya existe")
	}
	if exists, err := userRepo.EmailExists(ctx, *email, ""); err != nil {
		log.Fatal().Err(err).Msg("verificar email")
	} else if exists {
		log.Fatal().Str("email", *email).Msg("el email ya existe")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("generar hash de contraseña")
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("crear usuario")
	}

	log.Info().
		Str("id", user.ID).
		Str("username", user.Username).
		Msg("SuperAdmin creado")
}
