// internal/config/model.go
//
// Typed configuration model for Larder.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `.env`                          – dotenv values,
//   - `conf/global.yaml`                       – primary static file,
//   - `LARDER_`-prefixed environment overrides – highest precedence.
//
// A value of the form `vault:<mount>/<path>#<field>` is resolved
// through the Vault client after unmarshalling, so the model never
// stores Vault URIs beyond the loader.
//
// Validation happens immediately after unmarshal; the app fails fast
// if required fields are missing.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   - The `Paths` block is filled at runtime; YAML must not set it.
package config

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

// Store selects and configures the persistence backend.  DSN is only
// required for mysql; Path only for badger and csv.  Password may be a
// `vault:` reference and is substituted into the DSN's `%s` verb when
// both are set.
type Store struct {
	Driver   string `koanf:"driver" validate:"required,oneof=mysql badger csv"`
	DSN      string `koanf:"dsn"      validate:"required_if=Driver mysql"`
	Password string `koanf:"password"`
	Path     string `koanf:"path" validate:"required_if=Driver badger,required_if=Driver csv"`
}

// Catalog points at the static recipe file.
type Catalog struct {
	Path string `koanf:"path" validate:"required"`
}

// Geo configures optional GeoIP enrichment of access logs.  Empty path
// disables lookups.
type Geo struct {
	MMDBPath string `koanf:"mmdb_path"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // LARDER_ROOT or discovered parent
}

// Config is the root of the tree.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	Store   Store   `koanf:"store"`
	Catalog Catalog `koanf:"catalog"`
	Geo     Geo     `koanf:"geo"`
	Paths   Paths
}
