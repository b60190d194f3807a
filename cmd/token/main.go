// Command token mints a local HS256 token for development against the jwt auth provider.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yigit/mentorium/internal/bootstrap"
	"github.com/yigit/mentorium/internal/config"
	"github.com/yigit/mentorium/internal/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email carried by the token (defaults to seed.admin_email)")
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if !strings.EqualFold(cfg.Auth.Provider, config.AuthProviderJWT) {
		logger.Fatal().Str("provider", cfg.Auth.Provider).Msg("Tokens can only be minted for the jwt auth provider")
	}

	subject := *email
	if subject == "" {
		subject = cfg.Seed.AdminEmail
	}
	if subject == "" {
		logger.Fatal().Msg("No email given and seed.admin_email is empty")
	}

	token, err := bootstrap.NewJWTService(cfg).GenerateToken(subject)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to sign token")
	}
	fmt.Fprintln(os.Stdout, token)
}
