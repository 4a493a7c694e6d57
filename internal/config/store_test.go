package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadStore_Defaults(t *testing.T) {
	cfg, err := LoadStore(newViper())
	require.NoError(t, err)

	assert.Equal(t, DriverFirebase, cfg.Driver)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "ignore", cfg.Paths[service.ResourceIgnore])
	assert.Equal(t, "class_prod", cfg.Paths[service.ResourceClassification])
	assert.NotContains(t, cfg.SQLitePath, "$HOME")
}

func TestLoadStore_Overrides(t *testing.T) {
	v := newViper()
	v.Set("store.driver", "SQLite")
	v.Set("store.sqlite_path", "/tmp/monitor/store.db")
	v.Set("store.base_url", "https://example.firebaseio.com/root/")
	v.Set("store.timeout", "5s")
	v.Set("store.paths.products", "/staging/produtos/")

	cfg, err := LoadStore(v)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, "/tmp/monitor/store.db", cfg.SQLitePath)
	assert.Equal(t, "https://example.firebaseio.com/root", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "staging/produtos", cfg.Paths[service.ResourceProducts])
}

func TestLoadStore_FromEnv(t *testing.T) {
	t.Setenv("MONITOR_STORE_AUTH_TOKEN", "from-env")

	v := newViper()
	v.SetEnvPrefix("MONITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadStore(v)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AuthToken)
}

func TestStore_Validate(t *testing.T) {
	tests := []struct {
		want   error
		mutate func(*Store)
		name   string
	}{
		{name: "defaults", mutate: func(*Store) {}},
		{name: "unknown driver", mutate: func(s *Store) { s.Driver = "postgres" }, want: common.ErrInvalidConfig},
		{name: "missing base url", mutate: func(s *Store) { s.BaseURL = "" }, want: common.ErrMissingConfig},
		{name: "relative base url", mutate: func(s *Store) { s.BaseURL = "whtbase" }, want: common.ErrInvalidConfig},
		{name: "two credentials", mutate: func(s *Store) {
			s.AuthToken = "t"
			s.CredentialsFile = "/key.json"
		}, want: common.ErrInvalidConfig},
		{name: "sqlite without path", mutate: func(s *Store) {
			s.Driver = DriverSQLite
			s.SQLitePath = ""
		}, want: common.ErrMissingConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStore()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("MONITOR_TEST_DIR", "/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "store.db"), ExpandPath("~/store.db"))
	assert.Equal(t, "/data/store.db", ExpandPath("$MONITOR_TEST_DIR/store.db"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}
