// Package session holds the bearer token used to authenticate against the
// remote API. The token is resolved once at startup and is read-only for
// the rest of the process; signing in again means restarting the console.
package session

import (
	"fmt"
	"os"
	"strings"
)

// Store is a read-only-after-login token holder.
type Store struct {
	token string
}

// Load resolves the bearer token. An explicit token wins over a token
// file. A missing token is not an error: requests simply go out
// unauthenticated and the server answers 401.
func Load(token, tokenFile string) (*Store, error) {
	token = strings.TrimSpace(token)
	if token == "" && tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read token file: %w", err)
		}
		token = strings.TrimSpace(string(data))
	}
	return &Store{token: token}, nil
}

// Token returns the bearer token, empty when not signed in.
func (s *Store) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
