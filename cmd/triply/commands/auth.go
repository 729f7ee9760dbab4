package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/spf13/cobra"

	"github.com/triply/triply-go/internal/logger"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Client.Register(context.Background(), email, password); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Println("Account created. Run 'triply login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tok, err := app.Client.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Printf("Signed in as %s (token %s)\n", email, logger.RedactToken(tok))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Client.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tok, ok := app.Store.Get()
			if !ok {
				fmt.Println("Not signed in.")
				return nil
			}

			// The token is verified server-side; here we only read its claims.
			parsed, err := jwt.ParseInsecure([]byte(tok))
			if err != nil {
				fmt.Printf("Signed in with an opaque token (%s)\n", logger.RedactToken(tok))
				return nil
			}

			fmt.Printf("Signed in as %s\n", parsed.Subject())
			if iss := parsed.Issuer(); iss != "" {
				fmt.Printf("  Issuer:  %s\n", iss)
			}
			if exp := parsed.Expiration(); !exp.IsZero() {
				fmt.Printf("  Expires: %s\n", exp.Local().Format(time.RFC1123))
			}
			fmt.Printf("  Token:   %s\n", logger.RedactToken(tok))
			return nil
		},
	}
}
