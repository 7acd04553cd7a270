package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	perrors "github.com/petpost/petpost/internal/errors"
)

const loginHTTPTimeout = 30 * time.Second

// Credentials are what the backend hands out on a successful login.
type Credentials struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// Authenticator exchanges an email and password for credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Credentials, error)
}

// HTTPAuthenticator logs in against POST {baseURL}/login.
type HTTPAuthenticator struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPAuthenticator creates an authenticator for the backend at baseURL.
func NewHTTPAuthenticator(baseURL string) *HTTPAuthenticator {
	return NewHTTPAuthenticatorWithClient(&http.Client{Timeout: loginHTTPTimeout}, baseURL)
}

// NewHTTPAuthenticatorWithClient creates an authenticator with a custom HTTP client (for testing).
func NewHTTPAuthenticatorWithClient(client *http.Client, baseURL string) *HTTPAuthenticator {
	return &HTTPAuthenticator{httpClient: client, baseURL: baseURL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate implements Authenticator. Non-2xx responses are KindAuth
// errors; transport failures are KindNetwork.
func (a *HTTPAuthenticator) Authenticate(ctx context.Context, email, password string) (Credentials, error) {
	op := perrors.Op("auth.Login")

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return Credentials{}, perrors.E(op, perrors.KindInvalid, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return Credentials{}, perrors.E(op, perrors.KindNetwork, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Credentials{}, perrors.E(op, perrors.KindNetwork, "login request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Credentials{}, perrors.LoginRejected(resp.StatusCode)
	}

	var creds Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return Credentials{}, perrors.E(op, perrors.KindAuth, "failed to parse login response", err)
	}
	if creds.UserID == "" || creds.Token == "" {
		return Credentials{}, perrors.E(op, perrors.KindAuth, fmt.Sprintf("login response from %s is missing userId or token", a.baseURL))
	}
	return creds, nil
}
