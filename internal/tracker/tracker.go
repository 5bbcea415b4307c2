// Package tracker holds the client-side view of the journal.
//
// State owns the three collections fetched from a Store. Every command
// validates its input, performs one remote call, then re-fetches the whole
// snapshot and recomputes statistics. Cached collections are never patched
// in place: on any failure the previous snapshot stays as it was.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/stats"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// ErrStaleSnapshot the write reached the store but the follow-up refresh
// failed: the change is applied, the cached snapshot is the previous one.
// Commands return their result together with an error wrapping it.
var ErrStaleSnapshot = errors.New("change saved, local snapshot not refreshed")

// Store remote operations the state container relies on
type Store interface {
	ListStages(ctx context.Context) ([]dto.StageResponse, error)
	ListNotes(ctx context.Context) ([]dto.NoteResponse, error)
	ListEvaluations(ctx context.Context) ([]dto.EvaluationResponse, error)

	CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	UpdateStage(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	DeleteStage(ctx context.Context, id uint) error

	SaveNote(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, id uint) error

	CreateEvaluation(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error)
}

// Snapshot one consistent copy of the remote collections plus the
// statistics derived from it
type Snapshot struct {
	Stages      []dto.StageResponse
	Notes       []dto.NoteResponse
	Evaluations []dto.EvaluationResponse
	Overview    stats.Overview
}

// State client-side state container
type State struct {
	store  Store
	logger *zap.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// New creates an empty State; call Refresh to load it
func New(store Store, logger *zap.Logger) *State {
	return &State{
		store:  store,
		logger: logger.With(zap.String("component", "tracker")),
	}
}

// Snapshot returns the current snapshot. Slices are shared, callers must
// not modify them.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Refresh re-fetches the three collections concurrently and swaps them in
// only when every fetch succeeded
func (s *State) Refresh(ctx context.Context) error {
	var next Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stages, err := s.store.ListStages(gctx)
		if err != nil {
			return fmt.Errorf("list stages: %w", err)
		}
		next.Stages = stages
		return nil
	})
	g.Go(func() error {
		notes, err := s.store.ListNotes(gctx)
		if err != nil {
			return fmt.Errorf("list notes: %w", err)
		}
		next.Notes = notes
		return nil
	})
	g.Go(func() error {
		evals, err := s.store.ListEvaluations(gctx)
		if err != nil {
			return fmt.Errorf("list evaluations: %w", err)
		}
		next.Evaluations = evals
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("refresh failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	ov, err := overview(next.Stages, next.Notes)
	if err != nil {
		s.logger.Warn("refresh returned unreadable data", zap.Error(err))
		return err
	}
	next.Overview = ov

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	s.logger.Debug("snapshot refreshed",
		zap.Int("stages", len(next.Stages)),
		zap.Int("notes", len(next.Notes)),
		zap.Int("evaluations", len(next.Evaluations)),
	)
	return nil
}

func (s *State) refreshAfterWrite(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStaleSnapshot, err)
	}
	return nil
}

// ────────────────────── lookups ──────────────────────

// Stage returns the cached placement with the given id
func (s *State) Stage(id uint) (dto.StageResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.snap.Stages {
		if st.ID == id {
			return st, true
		}
	}
	return dto.StageResponse{}, false
}

// Note returns the cached journal entry with the given id
func (s *State) Note(id uint) (dto.NoteResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.snap.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return dto.NoteResponse{}, false
}

// StageForDate picks the placement covering date, first match in
// collection order
func (s *State) StageForDate(date string) (dto.StageResponse, bool, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return dto.StageResponse{}, false, apperrors.Validation("date must be YYYY-MM-DD")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	stages, err := toModelStages(s.snap.Stages)
	if err != nil {
		return dto.StageResponse{}, false, err
	}
	match, ok := stats.FindStageForDate(day, stages)
	if !ok {
		return dto.StageResponse{}, false, nil
	}
	for _, st := range s.snap.Stages {
		if st.ID == match.StageID {
			return st, true, nil
		}
	}
	return dto.StageResponse{}, false, nil
}

// ────────────────────── commands ──────────────────────

// CreateStage validates and creates a placement. Once the store accepted
// the write, a failed refresh returns the created placement along with an
// ErrStaleSnapshot error; the same holds for every command below.
func (s *State) CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	if err := validateCreateStage(req); err != nil {
		return nil, err
	}
	created, err := s.store.CreateStage(ctx, req)
	if err != nil {
		return nil, err
	}
	return created, s.refreshAfterWrite(ctx)
}

// UpdateStage applies a partial update. An id missing from the local
// snapshot is a silent no-op and returns (nil, nil).
func (s *State) UpdateStage(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	current, ok := s.Stage(id)
	if !ok {
		s.logger.Debug("update skipped, stage not in snapshot", zap.Uint("stage_id", id))
		return nil, nil
	}
	if err := validateUpdateStage(current, req); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateStage(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return updated, s.refreshAfterWrite(ctx)
}

// DeleteStage removes a placement with its entries and evaluations.
// It reports false when the id is not in the local snapshot.
func (s *State) DeleteStage(ctx context.Context, id uint) (bool, error) {
	if _, ok := s.Stage(id); !ok {
		s.logger.Debug("delete skipped, stage not in snapshot", zap.Uint("stage_id", id))
		return false, nil
	}
	if err := s.store.DeleteStage(ctx, id); err != nil {
		return false, err
	}
	return true, s.refreshAfterWrite(ctx)
}

// SaveNote creates or overwrites the entry of (stage, date)
func (s *State) SaveNote(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	if err := validateNote(req); err != nil {
		return nil, err
	}
	if _, ok := s.Stage(req.StageID); !ok {
		return nil, apperrors.Validation("stage does not exist")
	}
	saved, err := s.store.SaveNote(ctx, req)
	if err != nil {
		return nil, err
	}
	return saved, s.refreshAfterWrite(ctx)
}

// DeleteNote removes one journal entry. It reports false when the id is
// not in the local snapshot.
func (s *State) DeleteNote(ctx context.Context, id uint) (bool, error) {
	if _, ok := s.Note(id); !ok {
		s.logger.Debug("delete skipped, note not in snapshot", zap.Uint("note_id", id))
		return false, nil
	}
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return false, err
	}
	return true, s.refreshAfterWrite(ctx)
}

// CreateEvaluation records a self-evaluation
func (s *State) CreateEvaluation(ctx context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error) {
	if err := validateEvaluation(req); err != nil {
		return nil, err
	}
	if _, ok := s.Stage(req.StageID); !ok {
		return nil, apperrors.Validation("stage does not exist")
	}
	created, err := s.store.CreateEvaluation(ctx, req)
	if err != nil {
		return nil, err
	}
	return created, s.refreshAfterWrite(ctx)
}

// ────────────────────── validation ──────────────────────

func validateCreateStage(req *dto.CreateStageRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("name is required")
	}
	if _, ok := model.ParseModality(req.Modality); !ok {
		return apperrors.Validation(fmt.Sprintf("unknown modality %q", req.Modality))
	}
	return validateWindow(req.StartDate, req.EndDate)
}

func validateUpdateStage(current dto.StageResponse, req *dto.UpdateStageRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apperrors.Validation("name cannot be blank")
	}
	if req.Modality != nil {
		if _, ok := model.ParseModality(*req.Modality); !ok {
			return apperrors.Validation(fmt.Sprintf("unknown modality %q", *req.Modality))
		}
	}
	start, end := current.StartDate, current.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	return validateWindow(start, end)
}

func validateWindow(start, end string) error {
	from, err := calendar.ParseDate(start)
	if err != nil {
		return apperrors.Validation("start_date must be YYYY-MM-DD")
	}
	to, err := calendar.ParseDate(end)
	if err != nil {
		return apperrors.Validation("end_date must be YYYY-MM-DD")
	}
	if from.After(to) {
		return apperrors.Validation("start_date must not be after end_date")
	}
	return nil
}

func validateNote(req *dto.SaveNoteRequest) error {
	if req.StageID == 0 {
		return apperrors.Validation("stage_id is required")
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		return apperrors.Validation("date must be YYYY-MM-DD")
	}
	if _, ok := model.ParseMood(req.Mood); !ok {
		return apperrors.Validation(fmt.Sprintf("unknown mood %q", req.Mood))
	}
	n := model.Note{Activities: req.Activities, Reflections: req.Reflections, Lessons: req.Lessons}
	if !n.HasContent() {
		return apperrors.Validation("at least one of activities, reflections or lessons is required")
	}
	return nil
}

func validateEvaluation(req *dto.CreateEvaluationRequest) error {
	if req.StageID == 0 {
		return apperrors.Validation("stage_id is required")
	}
	if _, err := calendar.ParseDate(req.Date); err != nil {
		return apperrors.Validation("date must be YYYY-MM-DD")
	}
	if len(req.Scores) != model.CriteriaCount {
		return apperrors.Validation(fmt.Sprintf("exactly %d scores are required", model.CriteriaCount))
	}
	sum := 0
	for i, sc := range req.Scores {
		if sc == nil {
			return apperrors.Validation(fmt.Sprintf("score %d is missing", i+1))
		}
		if *sc < 0 || *sc > model.MaxCriterionScore {
			return apperrors.Validation(fmt.Sprintf("score %d must be between 0 and %d", i+1, model.MaxCriterionScore))
		}
		sum += *sc
	}
	if req.TotalScore != nil && *req.TotalScore != sum {
		return apperrors.Validation(fmt.Sprintf("total_score %d does not match the sum %d", *req.TotalScore, sum))
	}
	return nil
}

// ────────────────────── statistics ──────────────────────

func overview(stages []dto.StageResponse, notes []dto.NoteResponse) (stats.Overview, error) {
	ms, err := toModelStages(stages)
	if err != nil {
		return stats.Overview{}, err
	}
	mn, err := toModelNotes(notes)
	if err != nil {
		return stats.Overview{}, err
	}
	return stats.Summarize(ms, mn), nil
}

func toModelStages(in []dto.StageResponse) ([]model.Stage, error) {
	out := make([]model.Stage, 0, len(in))
	for _, st := range in {
		start, err := calendar.ParseDate(st.StartDate)
		if err != nil {
			return nil, apperrors.Store(fmt.Errorf("stage %d: start_date %q: %w", st.ID, st.StartDate, err))
		}
		end, err := calendar.ParseDate(st.EndDate)
		if err != nil {
			return nil, apperrors.Store(fmt.Errorf("stage %d: end_date %q: %w", st.ID, st.EndDate, err))
		}
		out = append(out, model.Stage{
			StageID:   st.ID,
			Name:      st.Name,
			Modality:  model.Modality(st.Modality),
			StartDate: start,
			EndDate:   end,
		})
	}
	return out, nil
}

func toModelNotes(in []dto.NoteResponse) ([]model.Note, error) {
	out := make([]model.Note, 0, len(in))
	for _, n := range in {
		day, err := calendar.ParseDate(n.Date)
		if err != nil {
			return nil, apperrors.Store(fmt.Errorf("note %d: date %q: %w", n.ID, n.Date, err))
		}
		out = append(out, model.Note{
			NoteID:  n.ID,
			StageID: n.StageID,
			Date:    day,
			Mood:    model.Mood(n.Mood),
		})
	}
	return out, nil
}
