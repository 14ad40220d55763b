package tui

import (
	"context"
	"time"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
	"github.com/nxtei/quality-draw/internal/tui/themes"
)

// Drawer is the part of the draw engine the screen drives.
type Drawer interface {
	CandidateNames(ctx context.Context, targetID string, specialty model.SpecialtyType) ([]string, error)
	Execute(ctx context.Context, targetID string, specialty model.SpecialtyType) model.DrawResult
	StartNewRound(ctx context.Context) error
	RoundStatus(ctx context.Context) (service.RoundSummary, error)
}

// DepartmentSource lists the departments to show.
type DepartmentSource interface {
	GetDepartments(ctx context.Context) ([]model.Department, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Drawer      Drawer
	Departments DepartmentSource
	// Animation is how long candidate names roll before the result is revealed; zero disables it.
	Animation time.Duration
	// TickInterval is the delay between two rolling frames.
	TickInterval time.Duration
	Width        int
	Height       int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Animation:    1500 * time.Millisecond,
		TickInterval: 80 * time.Millisecond,
		Width:        100,
		Height:       30,
	}
}

// WithDrawer sets the draw engine.
func WithDrawer(d Drawer) Option {
	return func(c *Config) {
		c.Drawer = d
	}
}

// WithDepartments sets where the department list comes from.
func WithDepartments(src DepartmentSource) Option {
	return func(c *Config) {
		c.Departments = src
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithAnimation sets the rolling duration and frame interval.
func WithAnimation(duration, tick time.Duration) Option {
	return func(c *Config) {
		c.Animation = duration
		if tick > 0 {
			c.TickInterval = tick
		}
	}
}
