// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `LARDER_`, where `__` maps to "."
     (e.g., `LARDER_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
Vault references are resolved, the result is validated and enriched
with the runtime root path, then cached in an `atomic.Pointer` for
lock-free reads.  `Reload()` simply calls `Load()` again and swaps the
pointer.

Notes
-----
  - `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`,
    so `go run ./cmd/larder` works from any sub-directory.
  - Relative store and catalog paths are anchored at the root.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/larder/internal/vault"
)

var current atomic.Pointer[Config]

// rootDir resolves LARDER_ROOT or climbs directories until
// conf/global.yaml is found.
func rootDir() string {
	if r := os.Getenv("LARDER_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return wd
}

// Load reads .env, YAML, env overrides, resolves secrets, validates,
// and caches Config.
func Load() (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}

	// Env overrides: LARDER_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("LARDER_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, "LARDER_"), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(&cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	anchorPaths(&cfg)

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"store_driver", cfg.Store.Driver,
		"catalog", cfg.Catalog.Path,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// resolveSecrets replaces `vault:` references and splices the store
// password into the DSN's %s verb when one is configured.
func resolveSecrets(cfg *Config) error {
	if vault.IsRef(cfg.Store.Password) {
		cli, err := vault.New()
		if err != nil {
			return err
		}
		pw, err := cli.Resolve(context.Background(), cfg.Store.Password)
		if err != nil {
			return err
		}
		cfg.Store.Password = pw
	}
	if cfg.Store.Password != "" && strings.Contains(cfg.Store.DSN, "%s") {
		cfg.Store.DSN = fmt.Sprintf(cfg.Store.DSN, cfg.Store.Password)
	}
	return nil
}

// anchorPaths makes relative file paths absolute against the root.
func anchorPaths(cfg *Config) {
	if cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(cfg.Paths.Root, cfg.Store.Path)
	}
	if cfg.Catalog.Path != "" && !filepath.IsAbs(cfg.Catalog.Path) {
		cfg.Catalog.Path = filepath.Join(cfg.Paths.Root, cfg.Catalog.Path)
	}
	if cfg.Geo.MMDBPath != "" && !filepath.IsAbs(cfg.Geo.MMDBPath) {
		cfg.Geo.MMDBPath = filepath.Join(cfg.Paths.Root, cfg.Geo.MMDBPath)
	}
}

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
