package gdrive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// LoadToken reads an OAuth token saved as JSON.
// A missing or empty file means the user has not signed in.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no token file at %s", domain.ErrAuthRequired, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: token file %s: %v", domain.ErrAuthRequired, path, err)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token file %s holds no token", domain.ErrAuthRequired, path)
	}
	return &token, nil
}

// SaveToken writes a token as JSON readable only by the user.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// persistingTokenSource writes each new access token back to disk so a
// refresh survives the process.
type persistingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	path   string
	latest string
}

// newPersistingTokenSource wraps base, starting from the token on disk.
func newPersistingTokenSource(base oauth2.TokenSource, path string, initial *oauth2.Token) oauth2.TokenSource {
	latest := ""
	if initial != nil {
		latest = initial.AccessToken
	}
	return &persistingTokenSource{base: base, path: path, latest: latest}
}

// Token implements oauth2.TokenSource.
func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if token.AccessToken != p.latest {
		p.latest = token.AccessToken
		// Keep going on a write failure; the token is still usable.
		_ = SaveToken(p.path, token)
	}
	return token, nil
}
