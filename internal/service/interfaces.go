// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/nxtei/quality-draw/internal/model"
)

// RecordFilter narrows history queries.
type RecordFilter struct {
	Since              *time.Time
	TargetDepartmentID string
	Specialty          model.SpecialtyType
	Limit              int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Department catalog
	GetDepartments(ctx context.Context) ([]model.Department, error)
	GetDepartment(ctx context.Context, id string) (*model.Department, error)
	SaveDepartment(ctx context.Context, dept *model.Department) error
	DeleteDepartment(ctx context.Context, id string) error
	SeedDefaultDepartments(ctx context.Context) (int, error)

	// Draw history
	AddRecord(ctx context.Context, record *model.DrawRecord) error
	GetRecords(ctx context.Context, filter RecordFilter) ([]model.DrawRecord, error)
	ClearRecords(ctx context.Context) (int64, error)

	// Current round
	AddRoundPick(ctx context.Context, pick *model.RoundPick) error
	GetRoundPicks(ctx context.Context, specialty model.SpecialtyType) ([]model.RoundPick, error)
	ClearRound(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction groups the writes that make up one draw.
type Transaction interface {
	Commit() error
	Rollback() error
	AddRecord(ctx context.Context, record *model.DrawRecord) error
	AddRoundPick(ctx context.Context, pick *model.RoundPick) error
}

// RecordWriter exports draw history to some destination.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []model.DrawRecord) error
}

// RoundSummary describes the picks of the current round.
type RoundSummary struct {
	Pressure   []model.RoundPick
	Mechanical []model.RoundPick
}

// Total returns the number of picks made this round.
func (r RoundSummary) Total() int {
	return len(r.Pressure) + len(r.Mechanical)
}
