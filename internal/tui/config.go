package tui

import (
	"time"

	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/Veraticus/product-monitor/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Store        service.RemoteStore
	Width        int
	Height       int
	LoadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Width:        120,
		Height:       40,
		LoadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// WithStore sets the store the dashboard reads from and writes to.
func WithStore(store service.RemoteStore) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTimeouts bounds each fetch and each write. Zero keeps the default.
func WithTimeouts(load, write time.Duration) Option {
	return func(c *Config) {
		if load > 0 {
			c.LoadTimeout = load
		}
		if write > 0 {
			c.WriteTimeout = write
		}
	}
}
