// internal/config/model.go
//
// Typed configuration model for the edge.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `conf/.env`                    – dotenv values,
//   - `conf/global.yaml`                      – primary static file,
//   - `EDGE_`-prefixed environment overrides  – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* validation, so the model never
// stores Vault URIs, only plain strings.
//
// Validation happens immediately after unmarshal; the binary fails fast
// if required fields are missing.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`; Koanf ignores `yaml`
//     tags unless configured otherwise.
//   - The `Paths` block is filled at runtime; YAML must not try to set it.
//   - Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Platform section
//

// Platform names the reserved tenant domain and where apex traffic goes.
type Platform struct {
	// Domain is the bare platform apex; tenant subdomains hang off
	// "." + Domain, and Domain itself (plus www) redirects to MainAppURL.
	Domain     string `koanf:"domain" validate:"required,fqdn"`
	MainAppURL string `koanf:"main_app_url" validate:"required,url"`
}

//
// Cache section
//

// Cache selects and tunes the rendered-HTML store.
type Cache struct {
	// Backend is "memory" (single instance, dev) or "redis" (shared).
	Backend    string `koanf:"backend" validate:"required,oneof=memory redis"`
	TTLSeconds int    `koanf:"ttl_seconds" validate:"required,min=1"`
	MaxEntries int    `koanf:"max_entries"` // memory backend only; 0 = unbounded

	RedisAddr     string `koanf:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

//
// Purge section
//

// Purge guards the cache-invalidation endpoint.  The secret may be a
// `vault:` reference in YAML.
type Purge struct {
	Secret string `koanf:"secret" validate:"required,min=16"`
}

//
// Directory section
//

// Directory points at the system of record holding site records.
type Directory struct {
	// Backend is "rest" (hosted API) or "sql" (self-hosted MySQL protocol).
	Backend string `koanf:"backend" validate:"required,oneof=rest sql"`

	BaseURL string `koanf:"base_url" validate:"required_if=Backend rest,omitempty,url"`
	APIKey  string `koanf:"api_key" validate:"required_if=Backend rest"`

	DSN string `koanf:"dsn" validate:"required_if=Backend sql"`
}

//
// GeoIP section
//

// GeoIP enables request geolocation in access logs when DBPath names a
// MaxMind database; empty disables the lookup entirely.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers Root (repo root or EDGE_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().  main reads it
// once at boot and injects the relevant values into each component.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Platform  Platform  `koanf:"platform"`
	Cache     Cache     `koanf:"cache"`
	Purge     Purge     `koanf:"purge"`
	Directory Directory `koanf:"directory"`
	GeoIP     GeoIP     `koanf:"geoip"`
	Paths     Paths     `koanf:"-"`
}
