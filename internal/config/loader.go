// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional dotenv file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `EDGE_`, where `__` maps to “.”
     (e.g., `EDGE_CACHE__TTL_SECONDS → cache.ttl_seconds`).

After merging, `vault:` secret references are resolved in place, the tree
is unmarshalled into strongly-typed structs, validated, and enriched with
the runtime root path.  The result is handed to main once at boot;
components receive the values they need by injection, never by reading
config ambiently.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, env overlay.
  • ERROR spans — YAML parse, env overlay, Vault resolution, unmarshal,
    and validation failures.
  • INFO  span  — final “config loaded” with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/edge` work from any sub-directory.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/sitegrove/edge/internal/vault"
)

// vaultTTL lets multiple references to the same secret share one fetch.
const vaultTTL = 5 * time.Minute

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves EDGE_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("EDGE_ROOT"); r != "" {
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

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, and env overrides, resolves Vault references,
// and returns the validated Config.
func Load(ctx context.Context) (*Config, error) {
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
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: EDGE_CACHE__TTL_SECONDS → cache.ttl_seconds
	if err := k.Load(env.Provider("EDGE_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, "EDGE_"), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if err := resolveVaultRefs(ctx, k); err != nil {
		zap.S().Errorw("config vault resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"platform_domain", cfg.Platform.Domain,
		"cache_backend", cfg.Cache.Backend,
		"directory_backend", cfg.Directory.Backend,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────── vault reference resolution ───────────────────────*/

// resolveVaultRefs rewrites every string leaf of the form
// "vault:<path>#<key>" with the secret it names.  The Vault client is
// only constructed when at least one reference exists, so dev setups
// without Vault never dial it.
func resolveVaultRefs(ctx context.Context, k *koanf.Koanf) error {
	var refs []string
	for key, val := range k.All() {
		if s, ok := val.(string); ok && strings.HasPrefix(s, "vault:") {
			refs = append(refs, key)
		}
	}
	if len(refs) == 0 {
		return nil
	}

	cli, err := vault.New(ctx, zap.S().Infof)
	if err != nil {
		return err
	}

	for _, key := range refs {
		ref := strings.TrimPrefix(k.String(key), "vault:")
		path, field, ok := strings.Cut(ref, "#")
		if !ok {
			zap.S().Errorw("malformed vault reference", "key", key, "ref", ref)
			continue
		}
		val, err := cli.GetKV(ctx, path, field, vaultTTL)
		if err != nil {
			return err
		}
		if err := k.Set(key, val); err != nil {
			return err
		}
	}
	return nil
}
