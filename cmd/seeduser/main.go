// Command seeduser creates or resets an API account. Run once after deploy
// to create the owner login:
//
//	seeduser -username owner -name "Shop Owner" -password s3cret -role owner
package main

import (
	"context"
	"flag"
	"os"

	"saribill/internal/config"
	"saribill/internal/infra"
	"saribill/internal/model"
	"saribill/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	username := flag.String("username", "", "login username")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "plaintext password to hash")
	role := flag.String("role", "staff", "owner | staff")
	flag.Parse()

	if *username == "" || *password == "" || *name == "" {
		log.Fatal().Msg("usage: seeduser -username U -name N -password P [-role owner|staff]")
	}
	if *role != "owner" && *role != "staff" {
		log.Fatal().Str("role", *role).Msg("role must be owner or staff")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	users := repository.NewUserRepository(db)
	err = users.Upsert(context.Background(), &model.User{
		Username:     *username,
		Name:         *name,
		PasswordHash: string(hash),
		Role:         *role,
		Active:       true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("user upsert failed")
	}

	log.Info().Str("username", *username).Str("role", *role).Msg("user seeded")
}
