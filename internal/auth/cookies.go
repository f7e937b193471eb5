package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"

	"github.com/yuhaochen/lexipost/internal/config"
)

// Cookie names the creator site sets for an authenticated session.
const (
	cookieWebSession = "web_session"
	cookieA1         = "a1"
)

// creatorDomain matches xiaohongshu session cookies.
const creatorDomain = "xiaohongshu.com"

// CookieStore handles storage of creator-site session cookies
type CookieStore struct {
	path string
}

// StoredCookies represents the persisted cookie data
type StoredCookies struct {
	Cookies    []*network.Cookie `json:"cookies"`
	CapturedAt time.Time         `json:"captured_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// NewCookieStore creates a cookie store at the given path
func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// DefaultCookieStorePath returns the default path for cookie storage
func DefaultCookieStorePath() (string, error) {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cookies.json"), nil
}

// Save persists cookies to disk
// TODO: Encrypt cookies at rest
func (cs *CookieStore) Save(cookies []*network.Cookie) error {
	dir := filepath.Dir(cs.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// Find the earliest expiration among session cookies
	var earliestExpiry time.Time
	for _, c := range cookies {
		if c.Name == cookieWebSession || c.Name == cookieA1 {
			exp := time.Unix(int64(c.Expires), 0)
			if earliestExpiry.IsZero() || exp.Before(earliestExpiry) {
				earliestExpiry = exp
			}
		}
	}

	stored := StoredCookies{
		Cookies:    cookies,
		CapturedAt: time.Now(),
		ExpiresAt:  earliestExpiry,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cs.path, data, 0600)
}

// Load retrieves cookies from disk
func (cs *CookieStore) Load() (*StoredCookies, error) {
	data, err := os.ReadFile(cs.path)
	if err != nil {
		return nil, err
	}

	var stored StoredCookies
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	return &stored, nil
}

// IsValid checks if stored cookies are still valid
func (cs *CookieStore) IsValid() bool {
	stored, err := cs.Load()
	if err != nil {
		return false
	}

	if time.Now().After(stored.ExpiresAt) {
		return false
	}

	for _, c := range stored.Cookies {
		if c.Name == cookieWebSession {
			return true
		}
	}
	return false
}

// Clear removes stored cookies
func (cs *CookieStore) Clear() error {
	return os.Remove(cs.path)
}

// SessionCookies returns only the creator-site cookies for injection
// into the publishing browser.
func (cs *CookieStore) SessionCookies() ([]*network.Cookie, error) {
	stored, err := cs.Load()
	if err != nil {
		return nil, err
	}

	var cookies []*network.Cookie
	for _, c := range stored.Cookies {
		if matchesCreatorDomain(c.Domain) {
			cookies = append(cookies, c)
		}
	}

	return cookies, nil
}

func matchesCreatorDomain(domain string) bool {
	if domain == creatorDomain || domain == "."+creatorDomain {
		return true
	}
	// Subdomains like creator.xiaohongshu.com
	return len(domain) > len(creatorDomain) && domain[len(domain)-len(creatorDomain)-1:] == "."+creatorDomain
}
