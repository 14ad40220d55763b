// Package engine implements the randomized draw that assigns inspecting departments.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
)

// Failure messages shown to operators.
const (
	MsgInvalidSpecialty = "无效的专责类型"
	MsgTargetNotFound   = "未找到目标部门"
	MsgNotNeeded        = "该部门不需要抽取此类专责"
	MsgNoCandidates     = "没有符合条件的候选部门"
	MsgDrawFailed       = "抽签失败"
)

// maxDrawAttempts bounds how often a draw is repeated after losing a pick to another process.
const maxDrawAttempts = 3

// DrawEngine selects inspecting departments and keeps the round and history up to date.
type DrawEngine struct {
	storage     service.Storage
	picker      Picker
	now         func() time.Time
	logger      *slog.Logger
	mu          sync.Mutex
	avoidRepeat bool
}

// Config holds configuration options for the draw engine.
type Config struct {
	Picker Picker
	Now    func() time.Time
	Logger *slog.Logger
	// AvoidRepeat excludes the department drawn the last time the same
	// target and specialty were drawn.
	AvoidRepeat bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Picker: randPicker{},
		Now:    time.Now,
	}
}

// New creates a draw engine with the default configuration.
func New(storage service.Storage) *DrawEngine {
	return NewWithConfig(storage, DefaultConfig())
}

// NewWithConfig creates a draw engine with custom configuration.
func NewWithConfig(storage service.Storage, config Config) *DrawEngine {
	if config.Picker == nil {
		config.Picker = randPicker{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &DrawEngine{
		storage:     storage,
		picker:      config.Picker,
		now:         config.Now,
		logger:      config.Logger,
		avoidRepeat: config.AvoidRepeat,
	}
}

// Candidates returns the departments that may currently be drawn for target and specialty.
func (e *DrawEngine) Candidates(ctx context.Context, targetID string, specialty model.SpecialtyType) ([]model.Department, error) {
	if !specialty.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidSpecialty, specialty)
	}

	departments, err := e.storage.GetDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	picks, err := e.storage.GetRoundPicks(ctx, specialty)
	if err != nil {
		return nil, fmt.Errorf("failed to load round picks: %w", err)
	}

	exclude, err := e.lastSelected(ctx, targetID, specialty)
	if err != nil {
		return nil, err
	}

	candidates := FilterCandidates(departments, targetID, specialty, picks)
	if exclude == "" {
		return candidates, nil
	}
	out := candidates[:0]
	for _, d := range candidates {
		if d.ID != exclude {
			out = append(out, d)
		}
	}
	return out, nil
}

// CandidateNames is Candidates reduced to display names, for the rolling animation.
func (e *DrawEngine) CandidateNames(ctx context.Context, targetID string, specialty model.SpecialtyType) ([]string, error) {
	candidates, err := e.Candidates(ctx, targetID, specialty)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(candidates))
	for i, d := range candidates {
		names[i] = d.Name
	}
	return names, nil
}

// FilterCandidates applies the draw rules to a catalog:
//   - the department type must be accepted by the specialty,
//   - the target never inspects itself,
//   - a department already selected for this specialty this round is not selected again,
//   - a department the target was sent to inspect this round may not inspect the target back.
func FilterCandidates(departments []model.Department, targetID string, specialty model.SpecialtyType, picks []model.RoundPick) []model.Department {
	selected := make(map[string]bool, len(picks))
	crossAvoid := make(map[string]bool)
	for _, p := range picks {
		if p.Specialty != "" && p.Specialty != specialty {
			continue
		}
		selected[p.SelectedDepartmentID] = true
		if p.SelectedDepartmentID == targetID {
			crossAvoid[p.TargetDepartmentID] = true
		}
	}

	var out []model.Department
	for _, d := range departments {
		if !specialty.Accepts(d.DepartmentType) {
			continue
		}
		if d.ID == targetID || selected[d.ID] || crossAvoid[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (e *DrawEngine) lastSelected(ctx context.Context, targetID string, specialty model.SpecialtyType) (string, error) {
	if !e.avoidRepeat {
		return "", nil
	}
	records, err := e.storage.GetRecords(ctx, service.RecordFilter{
		TargetDepartmentID: targetID,
		Specialty:          specialty,
		Limit:              1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to load previous draw: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].SelectedSpecialistID, nil
}

// Draw performs one draw and persists the round pick and the history record together.
func (e *DrawEngine) Draw(ctx context.Context, targetID string, specialty model.SpecialtyType) (*model.DrawRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !specialty.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidSpecialty, specialty)
	}

	target, err := e.storage.GetDepartment(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrDepartmentNotFound, targetID)
		}
		return nil, fmt.Errorf("failed to load target department: %w", err)
	}
	if !specialty.Accepts(target.DepartmentType) {
		return nil, fmt.Errorf("%w: %s is %s, not %s", common.ErrSpecialtyNotNeeded,
			target.ID, target.DepartmentType, specialty)
	}

	for attempt := 1; ; attempt++ {
		record, err := e.drawOnce(ctx, target, specialty)
		if errors.Is(err, common.ErrPickConflict) && attempt < maxDrawAttempts {
			e.logger.Debug("Selected department was taken concurrently, drawing again",
				"target", target.ID,
				"specialty", specialty,
				"attempt", attempt,
				"error", err)
			continue
		}
		return record, err
	}
}

// drawOnce picks from the current candidates and persists the result. It fails with
// common.ErrPickConflict when another process took the same department in the meantime.
func (e *DrawEngine) drawOnce(ctx context.Context, target *model.Department, specialty model.SpecialtyType) (*model.DrawRecord, error) {
	candidates, err := e.Candidates(ctx, target.ID, specialty)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", common.ErrNoCandidates, target.ID, specialty)
	}

	selected := candidates[e.picker.IntN(len(candidates))]
	now := e.now()
	record := model.NewDrawRecord(*target, specialty, selected, now)
	if err := record.Validate(target.DepartmentType); err != nil {
		return nil, fmt.Errorf("refusing inconsistent record: %w", err)
	}
	pick := model.RoundPick{
		Specialty:            specialty,
		TargetDepartmentID:   target.ID,
		SelectedDepartmentID: selected.ID,
		CreatedAt:            now,
	}

	if err := e.persist(ctx, &record, &pick); err != nil {
		return nil, err
	}

	e.logger.Info("Draw completed",
		"target", target.ID,
		"specialty", specialty,
		"selected", selected.ID,
		"candidates", len(candidates),
		"record_id", record.ID)

	return &record, nil
}

func (e *DrawEngine) persist(ctx context.Context, record *model.DrawRecord, pick *model.RoundPick) error {
	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.AddRoundPick(ctx, pick); err != nil {
		return err
	}
	if err := tx.AddRecord(ctx, record); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit draw: %w", err)
	}
	return nil
}

// Execute runs a draw and reports the outcome as a DrawResult. It never returns an error;
// failures are described in DrawResult.Message.
func (e *DrawEngine) Execute(ctx context.Context, targetID string, specialty model.SpecialtyType) model.DrawResult {
	record, err := e.Draw(ctx, targetID, specialty)
	if err != nil {
		msg := FailureMessage(err)
		e.logger.Warn("Draw failed",
			"target", targetID,
			"specialty", specialty,
			"error", err)
		return model.FailureResult(msg)
	}
	return model.SuccessResult(model.Department{
		ID:   record.SelectedSpecialistID,
		Name: record.SelectedSpecialistName,
	}, record.SpecialtyType)
}

// DrawAll executes every specialty the target's department type requires.
func (e *DrawEngine) DrawAll(ctx context.Context, targetID string) []model.DrawResult {
	target, err := e.storage.GetDepartment(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			err = fmt.Errorf("%w: %s", common.ErrDepartmentNotFound, targetID)
		}
		return []model.DrawResult{model.FailureResult(FailureMessage(err))}
	}

	specialties := target.DepartmentType.Specialties()
	results := make([]model.DrawResult, 0, len(specialties))
	for _, specialty := range specialties {
		results = append(results, e.Execute(ctx, target.ID, specialty))
	}
	return results
}

// FailureMessage maps a draw error to the operator-facing message.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidSpecialty):
		return MsgInvalidSpecialty
	case errors.Is(err, common.ErrDepartmentNotFound):
		return MsgTargetNotFound
	case errors.Is(err, common.ErrSpecialtyNotNeeded):
		return MsgNotNeeded
	case errors.Is(err, common.ErrNoCandidates):
		return MsgNoCandidates
	default:
		return fmt.Sprintf("%s: %v", MsgDrawFailed, err)
	}
}

// StartNewRound clears the current round so every department is eligible again.
func (e *DrawEngine) StartNewRound(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.storage.ClearRound(ctx); err != nil {
		return err
	}
	e.logger.Info("Started new draw round")
	return nil
}

// RoundStatus returns the picks made in the current round.
func (e *DrawEngine) RoundStatus(ctx context.Context) (service.RoundSummary, error) {
	var summary service.RoundSummary
	var err error
	if summary.Pressure, err = e.storage.GetRoundPicks(ctx, model.SpecialtyPressure); err != nil {
		return summary, err
	}
	if summary.Mechanical, err = e.storage.GetRoundPicks(ctx, model.SpecialtyMechanical); err != nil {
		return summary, err
	}
	return summary, nil
}
