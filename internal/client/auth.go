package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. Success has no response body worth reading.
func (c *Client) Register(ctx context.Context, email, password string) error {
	_, err := c.Do(ctx, http.MethodPost, "/api/Auth/register", credentials{Email: email, Password: password}, nil)
	return err
}

// Login exchanges credentials for a bearer token and stores it, which
// notifies every token-store subscriber. A response without a token is fatal.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.Do(ctx, http.MethodPost, "/api/Auth/login", credentials{Email: email, Password: password}, nil)
	if err != nil {
		return "", err
	}

	var resp map[string]any
	_ = json.Unmarshal(body, &resp)

	tok, _ := resp["token"].(string)
	if tok == "" {
		return "", errors.New("Login failed: token missing")
	}

	if err := c.tokens.Set(tok); err != nil {
		return "", err
	}
	return tok, nil
}

// Logout drops the stored credential. Purely client-side.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}
