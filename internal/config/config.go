package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultURL      = "https://gitlab.com"
	DefaultPerPage  = 100
	DefaultCacheTTL = 300 * time.Second
	DefaultLogLevel = "info"

	maxTTLSeconds = uint64(math.MaxInt64 / int64(time.Second))
)

// Setting keys. Each is bound to the environment variable in envNames.
const (
	KeyURL              = "url"
	KeyToken            = "token"
	KeyAllAvailable     = "all_available"
	KeyOwned            = "owned"
	KeyTopLevelOnly     = "top_level_only"
	KeyIncludeSubgroups = "include_subgroups"
	KeyVisibility       = "visibility"
	KeyPerPage          = "per_page"
	KeyCacheTTL         = "cache_ttl_seconds"
	KeyCachePath        = "cache_path"
	KeyLogFile          = "log_file"
	KeyLogLevel         = "log_level"
)

var envNames = map[string]string{
	KeyURL:              "GITLAB_URL",
	KeyToken:            "GITLAB_TOKEN",
	KeyAllAvailable:     "GITLAB_ALL_AVAILABLE",
	KeyOwned:            "GITLAB_OWNED",
	KeyTopLevelOnly:     "GITLAB_TOP_LEVEL_ONLY",
	KeyIncludeSubgroups: "GITLAB_INCLUDE_SUBGROUPS",
	KeyVisibility:       "GITLAB_VISIBILITY",
	KeyPerPage:          "GITLAB_PER_PAGE",
	KeyCacheTTL:         "GITLAB_CACHE_TTL_SECONDS",
	KeyCachePath:        "GITLAB_CACHE_PATH",
	KeyLogFile:          "GITLAB_TREE_LOG_FILE",
	KeyLogLevel:         "GITLAB_TREE_LOG_LEVEL",
}

// Sentinel errors matched by *Error
var (
	ErrMissing = errors.New("missing setting")
	ErrInvalid = errors.New("invalid setting")
)

// Error describes a missing or malformed setting
type Error struct {
	Name  string // environment variable name
	Value string
	Kind  string // "boolean" or "integer" for invalid values
	err   error
}

func (e *Error) Error() string {
	if e.err == ErrMissing {
		return "missing required environment variable: " + e.Name
	}
	return fmt.Sprintf("invalid %s for %s: %s", e.Kind, e.Name, e.Value)
}

func (e *Error) Is(target error) bool {
	return target == e.err
}

// Filters narrow the GitLab listings. Nil booleans are left off the request.
type Filters struct {
	AllAvailable     *bool
	Owned            *bool
	TopLevelOnly     *bool
	IncludeSubgroups *bool
	Visibility       string
}

// CacheSettings locate and age the snapshot cache
type CacheSettings struct {
	Path string
	TTL  time.Duration
}

// Config is the fully resolved runtime configuration
type Config struct {
	URL      string
	Token    string
	Filters  Filters
	PerPage  int
	Cache    CacheSettings
	LogFile  string
	LogLevel string
}

// TokenSet reports whether a token was supplied
func (c *Config) TokenSet() bool {
	return c.Token != ""
}

// New returns a viper instance with every key bound to its environment
// variable
func New() *viper.Viper {
	v := viper.New()
	for key, env := range envNames {
		_ = v.BindEnv(key, env)
	}
	return v
}

// EnvName returns the environment variable bound to key
func EnvName(key string) string {
	return envNames[key]
}

// ReadFile merges a YAML config file into v. An explicit path must exist;
// without one the default location is used only when present.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "gitlab-tree", "config.yaml")
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load resolves the full configuration. The token is required.
func Load(v *viper.Viper) (*Config, error) {
	token, ok := lookup(v, KeyToken)
	if !ok {
		return nil, &Error{Name: EnvName(KeyToken), err: ErrMissing}
	}

	cfg := &Config{
		URL:      stringOr(v, KeyURL, DefaultURL),
		Token:    token,
		LogFile:  stringOr(v, KeyLogFile, ""),
		LogLevel: stringOr(v, KeyLogLevel, DefaultLogLevel),
	}

	var err error
	bools := []struct {
		key string
		dst **bool
	}{
		{KeyAllAvailable, &cfg.Filters.AllAvailable},
		{KeyOwned, &cfg.Filters.Owned},
		{KeyTopLevelOnly, &cfg.Filters.TopLevelOnly},
		{KeyIncludeSubgroups, &cfg.Filters.IncludeSubgroups},
	}
	for _, b := range bools {
		if *b.dst, err = optionalBool(v, b.key); err != nil {
			return nil, err
		}
	}
	cfg.Filters.Visibility = stringOr(v, KeyVisibility, "")

	perPage, err := optionalUint(v, KeyPerPage, 16, DefaultPerPage)
	if err != nil {
		return nil, err
	}
	cfg.PerPage = int(perPage)

	if cfg.Cache, err = LoadCacheSettings(v); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCacheSettings resolves only the cache location and TTL, which need no
// credentials
func LoadCacheSettings(v *viper.Viper) (CacheSettings, error) {
	ttl, err := optionalUint(v, KeyCacheTTL, 64, uint64(DefaultCacheTTL/time.Second))
	if err != nil {
		return CacheSettings{}, err
	}
	// Larger values overflow time.Duration
	if ttl > maxTTLSeconds {
		return CacheSettings{}, &Error{Name: EnvName(KeyCacheTTL), Value: v.GetString(KeyCacheTTL), Kind: "integer", err: ErrInvalid}
	}
	return CacheSettings{
		Path: stringOr(v, KeyCachePath, DefaultCachePath()),
		TTL:  time.Duration(ttl) * time.Second,
	}, nil
}

// DefaultCachePath is <user cache dir>/gitlab-tree/cache.json
func DefaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "gitlab-tree", "cache.json")
}

// lookup treats blank values as unset
func lookup(v *viper.Viper, key string) (string, bool) {
	raw := v.GetString(key)
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

func stringOr(v *viper.Viper, key, fallback string) string {
	if s, ok := lookup(v, key); ok {
		return s
	}
	return fallback
}

func optionalBool(v *viper.Viper, key string) (*bool, error) {
	raw, ok := lookup(v, key)
	if !ok {
		return nil, nil
	}
	var b bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		b = true
	case "0", "false", "no", "off":
		b = false
	default:
		return nil, &Error{Name: EnvName(key), Value: raw, Kind: "boolean", err: ErrInvalid}
	}
	return &b, nil
}

func optionalUint(v *viper.Viper, key string, bits int, fallback uint64) (uint64, error) {
	raw, ok := lookup(v, key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, bits)
	if err != nil {
		return 0, &Error{Name: EnvName(key), Value: raw, Kind: "integer", err: ErrInvalid}
	}
	return n, nil
}
