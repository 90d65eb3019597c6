package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/gagankishoreint-glitch/credai/pkg/auth"
)

const (
	userFlagName       = "user"
	roleFlagName       = "role"
	secretFlagName     = "secret"
	privateKeyFlagName = "private-key"
	issuerFlagName     = "issuer"
	ttlFlagName        = "ttl"
)

func newTokenCmd() *cli.Command {
	return &cli.Command{
		Name:    "token",
		Aliases: []string{"t"},
		Usage:   "Issue a bearer token for the credai API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  userFlagName,
				Usage: "User ID to embed in the token (optional, defaults to a random UUID)",
			},
			&cli.StringSliceFlag{
				Name:  roleFlagName,
				Usage: fmt.Sprintf("Role to grant, repeatable [%s, %s, %s]", auth.RoleApplicant, auth.RoleUnderwriter, auth.RoleAdmin),
				Value: []string{auth.RoleApplicant},
			},
			&cli.StringFlag{
				Name:    secretFlagName,
				Usage:   "HMAC signing secret",
				Sources: cli.EnvVars("JWT_SECRET"),
			},
			&cli.StringFlag{
				Name:    privateKeyFlagName,
				Usage:   "Path to an RSA private key; takes precedence over --secret",
				Sources: cli.EnvVars("JWT_PRIVATE_KEY_PATH"),
			},
			&cli.StringFlag{
				Name:    issuerFlagName,
				Usage:   "Token issuer",
				Value:   "credai",
				Sources: cli.EnvVars("JWT_ISSUER"),
			},
			&cli.DurationFlag{
				Name:  ttlFlagName,
				Usage: "Token lifetime",
				Value: 24 * time.Hour,
			},
		},
		Action: cmdToken,
	}
}

func cmdToken(_ context.Context, cmd *cli.Command) error {
	userID := uuid.New()
	if v := cmd.String(userFlagName); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", v, err)
		}
		userID = id
	}

	cfg := auth.JWTConfig{
		Issuer:     cmd.String(issuerFlagName),
		Expiration: cmd.Duration(ttlFlagName),
	}
	switch {
	case cmd.String(privateKeyFlagName) != "":
		key, err := auth.LoadKeyFromFile(cmd.String(privateKeyFlagName))
		if err != nil {
			return err
		}
		cfg.PrivateKeyPEM = string(key)
	case cmd.String(secretFlagName) != "":
		cfg.Secret = cmd.String(secretFlagName)
	default:
		return fmt.Errorf("one of --%s or --%s is required", secretFlagName, privateKeyFlagName)
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return fmt.Errorf("creating JWT service: %w", err)
	}
	token, err := svc.GenerateToken(userID, cmd.StringSlice(roleFlagName))
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, token)
	return err
}
