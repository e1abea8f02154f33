// internal/vault/vault.go
//
// HashiCorp Vault client wrapper.
//
// Context
// -------
// Config values may point at Vault instead of carrying a secret
// inline, using the URI form
//
//	vault:<mount>/<path>#<field>
//
// The loader calls Resolve on any such value before the config struct
// is handed to the rest of the service, so nothing downstream ever
// sees a Vault URI.  Lookups are cached per key with a short TTL to
// keep config reloads cheap.
//
// Environment expectations: VAULT_ADDR and VAULT_TOKEN, the standard
// SDK variables.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Prefix marks a config value as a Vault reference.
const Prefix = "vault:"

const cacheTTL = 5 * time.Minute

// Client is safe for concurrent use.  Zero value is invalid; construct
// with New.
type Client struct {
	api *vault.Client

	mu    sync.RWMutex
	cache map[string]cached
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a client from the standard Vault environment.
func New() (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{api: apiCli, cache: make(map[string]cached)}, nil
}

// IsRef reports whether value carries the vault: prefix.
func IsRef(value string) bool { return strings.HasPrefix(value, Prefix) }

// Resolve fetches the field a vault: URI points at.  Non-reference
// values are returned unchanged.
func (c *Client) Resolve(ctx context.Context, value string) (string, error) {
	if !IsRef(value) {
		return value, nil
	}

	ref := strings.TrimPrefix(value, Prefix)
	path, field, ok := strings.Cut(ref, "#")
	if !ok || path == "" || field == "" {
		return "", fmt.Errorf("malformed vault reference %q", value)
	}
	return c.getKV(ctx, path, field)
}

func (c *Client) getKV(ctx context.Context, secretPath, field string) (string, error) {
	canonical := secretPath + "#" + field

	c.mu.RLock()
	if cv, ok := c.cache[canonical]; ok && time.Now().Before(cv.exp) {
		c.mu.RUnlock()
		return cv.val, nil
	}
	c.mu.RUnlock()

	mount, rel, ok := strings.Cut(secretPath, "/")
	if !ok {
		return "", errors.New("vault path must be <mount>/<path>")
	}

	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}
	raw, ok := sec.Data[field]
	if !ok {
		return "", fmt.Errorf("field %q not found in secret %q", field, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, field)
	}

	c.mu.Lock()
	c.cache[canonical] = cached{val: sval, exp: time.Now().Add(cacheTTL)}
	c.mu.Unlock()
	return sval, nil
}
