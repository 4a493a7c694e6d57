package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverFirebase = "firebase"
	DriverSQLite   = "sqlite"
)

// Defaults for the remote store.
const (
	DefaultBaseURL    = "https://wht-ml-scraper-default-rtdb.firebaseio.com/whtbase"
	DefaultSQLitePath = "$HOME/.local/share/monitor/store.db"
	DefaultTimeout    = 30 * time.Second
	DefaultServerAddr = ":8080"
	DefaultCertDir    = "$HOME/.config/monitor/certs"
)

// Store holds remote store settings.
type Store struct {
	Paths           map[service.Resource]string
	Driver          string
	BaseURL         string
	AuthToken       string
	CredentialsFile string
	SQLitePath      string
	Timeout         time.Duration
}

// DefaultStore returns the settings used when nothing is configured.
func DefaultStore() Store {
	return Store{
		Driver:     DriverFirebase,
		BaseURL:    DefaultBaseURL,
		SQLitePath: ExpandPath(DefaultSQLitePath),
		Timeout:    DefaultTimeout,
		Paths: map[service.Resource]string{
			service.ResourceClassConfig:    string(service.ResourceClassConfig),
			service.ResourceProducts:       string(service.ResourceProducts),
			service.ResourceIgnore:         string(service.ResourceIgnore),
			service.ResourceClassification: string(service.ResourceClassification),
		},
	}
}

// SetDefaults registers store defaults with viper so env vars resolve.
func SetDefaults(v *viper.Viper) {
	def := DefaultStore()
	v.SetDefault("store.driver", def.Driver)
	v.SetDefault("store.base_url", def.BaseURL)
	v.SetDefault("store.sqlite_path", DefaultSQLitePath)
	v.SetDefault("store.timeout", def.Timeout)
	v.SetDefault("store.paths.class_config", def.Paths[service.ResourceClassConfig])
	v.SetDefault("store.paths.products", def.Paths[service.ResourceProducts])
	v.SetDefault("store.paths.ignore", def.Paths[service.ResourceIgnore])
	v.SetDefault("store.paths.classification", def.Paths[service.ResourceClassification])
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.cert_dir", DefaultCertDir)
	v.SetDefault("ui.theme", "default")
}

// LoadStore reads store settings from v. Values left empty fall back to the
// defaults.
func LoadStore(v *viper.Viper) (Store, error) {
	cfg := DefaultStore()

	if s := v.GetString("store.driver"); s != "" {
		cfg.Driver = strings.ToLower(s)
	}
	if s := v.GetString("store.base_url"); s != "" {
		cfg.BaseURL = strings.TrimRight(s, "/")
	}
	cfg.AuthToken = v.GetString("store.auth_token")
	if s := v.GetString("store.credentials_file"); s != "" {
		cfg.CredentialsFile = ExpandPath(s)
	}
	if s := v.GetString("store.sqlite_path"); s != "" {
		cfg.SQLitePath = ExpandPath(s)
	}
	if d := v.GetDuration("store.timeout"); d > 0 {
		cfg.Timeout = d
	}

	pathKeys := map[service.Resource]string{
		service.ResourceClassConfig:    "store.paths.class_config",
		service.ResourceProducts:       "store.paths.products",
		service.ResourceIgnore:         "store.paths.ignore",
		service.ResourceClassification: "store.paths.classification",
	}
	for resource, key := range pathKeys {
		if s := strings.Trim(v.GetString(key), "/"); s != "" {
			cfg.Paths[resource] = s
		}
	}

	if err := cfg.Validate(); err != nil {
		return Store{}, err
	}
	return cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (s Store) Validate() error {
	switch s.Driver {
	case DriverFirebase:
		if s.BaseURL == "" {
			return fmt.Errorf("%w: store.base_url", common.ErrMissingConfig)
		}
		u, err := url.Parse(s.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: store.base_url %q is not an absolute URL", common.ErrInvalidConfig, s.BaseURL)
		}
		if s.AuthToken != "" && s.CredentialsFile != "" {
			return fmt.Errorf("%w: set either store.auth_token or store.credentials_file, not both", common.ErrInvalidConfig)
		}
	case DriverSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("%w: store.sqlite_path", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", common.ErrInvalidConfig, s.Driver)
	}
	return nil
}
