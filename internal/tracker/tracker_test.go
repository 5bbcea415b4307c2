package tracker

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

var errOffline = errors.New("connection refused")

// fakeStore in-memory Store counting remote calls
type fakeStore struct {
	stages []dto.StageResponse
	notes  []dto.NoteResponse
	evals  []dto.EvaluationResponse
	nextID uint

	calls    map[string]int
	failOn   map[string]bool
	failList bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, calls: map[string]int{}, failOn: map[string]bool{}}
}

func (f *fakeStore) hit(op string) error {
	f.calls[op]++
	if f.failOn[op] {
		return apperrors.Store(errOffline)
	}
	return nil
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID - 1
}

func (f *fakeStore) ListStages(context.Context) ([]dto.StageResponse, error) {
	if f.failList {
		return nil, apperrors.Store(errOffline)
	}
	out := append([]dto.StageResponse(nil), f.stages...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (f *fakeStore) ListNotes(context.Context) ([]dto.NoteResponse, error) {
	if f.failList {
		return nil, apperrors.Store(errOffline)
	}
	return append([]dto.NoteResponse(nil), f.notes...), nil
}

func (f *fakeStore) ListEvaluations(context.Context) ([]dto.EvaluationResponse, error) {
	if f.failList {
		return nil, apperrors.Store(errOffline)
	}
	return append([]dto.EvaluationResponse(nil), f.evals...), nil
}

func (f *fakeStore) CreateStage(_ context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	if err := f.hit("CreateStage"); err != nil {
		return nil, err
	}
	st := dto.StageResponse{
		ID: f.id(), Name: req.Name, Modality: req.Modality,
		StartDate: req.StartDate, EndDate: req.EndDate,
	}
	f.stages = append(f.stages, st)
	return &st, nil
}

func (f *fakeStore) UpdateStage(_ context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	if err := f.hit("UpdateStage"); err != nil {
		return nil, err
	}
	for i := range f.stages {
		if f.stages[i].ID != id {
			continue
		}
		if req.Name != nil {
			f.stages[i].Name = *req.Name
		}
		if req.EndDate != nil {
			f.stages[i].EndDate = *req.EndDate
		}
		st := f.stages[i]
		return &st, nil
	}
	return nil, apperrors.NotFound("stage")
}

func (f *fakeStore) DeleteStage(_ context.Context, id uint) error {
	if err := f.hit("DeleteStage"); err != nil {
		return err
	}
	var stages []dto.StageResponse
	for _, st := range f.stages {
		if st.ID != id {
			stages = append(stages, st)
		}
	}
	var notes []dto.NoteResponse
	for _, n := range f.notes {
		if n.StageID != id {
			notes = append(notes, n)
		}
	}
	var evals []dto.EvaluationResponse
	for _, e := range f.evals {
		if e.StageID != id {
			evals = append(evals, e)
		}
	}
	f.stages, f.notes, f.evals = stages, notes, evals
	return nil
}

func (f *fakeStore) SaveNote(_ context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	if err := f.hit("SaveNote"); err != nil {
		return nil, err
	}
	mood, _ := model.ParseMood(req.Mood)
	for i := range f.notes {
		if f.notes[i].StageID == req.StageID && f.notes[i].Date == req.Date {
			f.notes[i].Mood = string(mood)
			f.notes[i].Activities = req.Activities
			n := f.notes[i]
			return &n, nil
		}
	}
	n := dto.NoteResponse{ID: f.id(), StageID: req.StageID, Date: req.Date, Mood: string(mood), Activities: req.Activities}
	f.notes = append(f.notes, n)
	return &n, nil
}

func (f *fakeStore) DeleteNote(_ context.Context, id uint) error {
	if err := f.hit("DeleteNote"); err != nil {
		return err
	}
	var notes []dto.NoteResponse
	for _, n := range f.notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}
	f.notes = notes
	return nil
}

func (f *fakeStore) CreateEvaluation(_ context.Context, req *dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error) {
	if err := f.hit("CreateEvaluation"); err != nil {
		return nil, err
	}
	scores := make([]int, len(req.Scores))
	total := 0
	for i, sc := range req.Scores {
		scores[i] = *sc
		total += *sc
	}
	e := dto.EvaluationResponse{ID: f.id(), StageID: req.StageID, Date: req.Date, Scores: scores, TotalScore: total}
	f.evals = append(f.evals, e)
	return &e, nil
}

// ── helpers ──

func newState(t *testing.T) (*State, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return New(store, zap.NewNop()), store
}

func seedScanner(t *testing.T, s *State) dto.StageResponse {
	t.Helper()
	st, err := s.CreateStage(context.Background(), &dto.CreateStageRequest{
		Name: "CHU Bordeaux - Scanner", Modality: "ct",
		StartDate: "2025-01-15", EndDate: "2025-03-15",
	})
	require.NoError(t, err)
	return *st
}

func scores(vals ...int) []*int {
	out := make([]*int, len(vals))
	for i := range vals {
		v := vals[i]
		out[i] = &v
	}
	return out
}

func strPtr(s string) *string { return &s }

// ── tests ──

func TestCreateStage_RefreshesSnapshot(t *testing.T) {
	s, _ := newState(t)
	st := seedScanner(t, s)

	snap := s.Snapshot()
	require.Len(t, snap.Stages, 1)
	assert.Equal(t, st.ID, snap.Stages[0].ID)
	assert.Equal(t, 0, snap.Overview.Global.Total)
}

func TestCreateStage_ValidationBeforeStore(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateStageRequest
	}{
		{"blank name", dto.CreateStageRequest{Name: "  ", Modality: "ct", StartDate: "2025-01-15", EndDate: "2025-03-15"}},
		{"bad modality", dto.CreateStageRequest{Name: "x", Modality: "xray", StartDate: "2025-01-15", EndDate: "2025-03-15"}},
		{"bad date", dto.CreateStageRequest{Name: "x", Modality: "ct", StartDate: "15/01/2025", EndDate: "2025-03-15"}},
		{"start after end", dto.CreateStageRequest{Name: "x", Modality: "ct", StartDate: "2025-03-16", EndDate: "2025-03-15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newState(t)
			_, err := s.CreateStage(context.Background(), &tt.req)
			assert.True(t, apperrors.IsValidation(err))
			assert.Zero(t, store.calls["CreateStage"])
		})
	}
}

func TestSaveNote_UpsertAndStats(t *testing.T) {
	s, _ := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)

	_, err := s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "excellent", Activities: "Premier scanner"})
	require.NoError(t, err)
	_, err = s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-16", Mood: "bien", Activities: "IRM genou"})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.Len(t, snap.Notes, 2)
	require.Len(t, snap.Overview.Stages, 1)
	stage := snap.Overview.Stages[0]
	assert.Equal(t, 50, stage.Breakdown.Percentage(model.MoodExcellent))
	assert.Equal(t, 50, stage.Breakdown.Percentage(model.MoodGood))
	assert.Equal(t, 59, stage.TotalDays)
	assert.Equal(t, 2, stage.LoggedDays)

	// same day again overwrites
	_, err = s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-16", Mood: "painful", Activities: "Garde difficile"})
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Len(t, snap.Notes, 2)
	assert.Equal(t, 1, snap.Overview.Global.Count(model.MoodPainful))
	assert.Equal(t, 0, snap.Overview.Global.Count(model.MoodGood))
}

func TestSaveNote_Validation(t *testing.T) {
	s, store := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)

	tests := []struct {
		name string
		req  dto.SaveNoteRequest
	}{
		{"empty content", dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "good", Activities: "  ", Lessons: "\n"}},
		{"unknown mood", dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "ecstatic", Activities: "x"}},
		{"bad date", dto.SaveNoteRequest{StageID: st.ID, Date: "2025-13-01", Mood: "good", Activities: "x"}},
		{"unknown stage", dto.SaveNoteRequest{StageID: 999, Date: "2025-01-15", Mood: "good", Activities: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SaveNote(ctx, &tt.req)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
	assert.Zero(t, store.calls["SaveNote"])
}

func TestStoreFailure_LeavesStateUnchanged(t *testing.T) {
	s, store := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)
	before := s.Snapshot()

	store.failOn["SaveNote"] = true
	_, err := s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "good", Activities: "x"})
	assert.True(t, apperrors.IsStore(err))
	assert.Equal(t, before, s.Snapshot())

	store.failOn["DeleteStage"] = true
	deleted, err := s.DeleteStage(ctx, st.ID)
	assert.False(t, deleted)
	assert.True(t, apperrors.IsStore(err))
	assert.Equal(t, before, s.Snapshot())
}

func TestRefreshFailure_KeepsPreviousSnapshot(t *testing.T) {
	s, store := newState(t)
	seedScanner(t, s)
	before := s.Snapshot()

	store.failList = true
	err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStore)
	assert.Equal(t, before, s.Snapshot())
}

func TestUnknownID_IsSilentNoop(t *testing.T) {
	s, store := newState(t)
	ctx := context.Background()
	seedScanner(t, s)

	updated, err := s.UpdateStage(ctx, 42, &dto.UpdateStageRequest{Name: strPtr("x")})
	assert.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := s.DeleteStage(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.DeleteNote(ctx, 42)
	assert.NoError(t, err)
	assert.False(t, deleted)

	assert.Zero(t, store.calls["UpdateStage"])
	assert.Zero(t, store.calls["DeleteStage"])
	assert.Zero(t, store.calls["DeleteNote"])
}

func TestUpdateStage_ValidatesMergedWindow(t *testing.T) {
	s, store := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)

	_, err := s.UpdateStage(ctx, st.ID, &dto.UpdateStageRequest{EndDate: strPtr("2025-01-01")})
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, store.calls["UpdateStage"])

	updated, err := s.UpdateStage(ctx, st.ID, &dto.UpdateStageRequest{EndDate: strPtr("2025-04-15")})
	require.NoError(t, err)
	assert.Equal(t, "2025-04-15", updated.EndDate)

	cached, ok := s.Stage(st.ID)
	require.True(t, ok)
	assert.Equal(t, "2025-04-15", cached.EndDate)
}

func TestDeleteStage_CascadesInSnapshot(t *testing.T) {
	s, _ := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)

	_, err := s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "good", Activities: "x"})
	require.NoError(t, err)
	_, err = s.CreateEvaluation(ctx, &dto.CreateEvaluationRequest{StageID: st.ID, Date: "2025-02-01", Scores: scores(4, 4, 3, 3, 2, 2, 1, 1, 0, 0)})
	require.NoError(t, err)

	deleted, err := s.DeleteStage(ctx, st.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	snap := s.Snapshot()
	assert.Empty(t, snap.Stages)
	assert.Empty(t, snap.Notes)
	assert.Empty(t, snap.Evaluations)
	assert.Empty(t, snap.Overview.Stages)
}

func TestDeleteNote(t *testing.T) {
	s, _ := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)

	n, err := s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "good", Activities: "x"})
	require.NoError(t, err)

	deleted, err := s.DeleteNote(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, s.Snapshot().Notes)
}

func TestCreateEvaluation_Validation(t *testing.T) {
	s, store := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)

	withNil := scores(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	withNil[3] = nil
	wrongTotal := 7

	tests := []struct {
		name string
		req  dto.CreateEvaluationRequest
	}{
		{"nine scores", dto.CreateEvaluationRequest{StageID: st.ID, Date: "2025-02-01", Scores: scores(1, 1, 1, 1, 1, 1, 1, 1, 1)}},
		{"missing score", dto.CreateEvaluationRequest{StageID: st.ID, Date: "2025-02-01", Scores: withNil}},
		{"out of range", dto.CreateEvaluationRequest{StageID: st.ID, Date: "2025-02-01", Scores: scores(5, 1, 1, 1, 1, 1, 1, 1, 1, 1)}},
		{"negative", dto.CreateEvaluationRequest{StageID: st.ID, Date: "2025-02-01", Scores: scores(-1, 1, 1, 1, 1, 1, 1, 1, 1, 1)}},
		{"total mismatch", dto.CreateEvaluationRequest{StageID: st.ID, Date: "2025-02-01", Scores: scores(1, 1, 1, 1, 1, 1, 1, 1, 1, 1), TotalScore: &wrongTotal}},
		{"unknown stage", dto.CreateEvaluationRequest{StageID: 77, Date: "2025-02-01", Scores: scores(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateEvaluation(ctx, &tt.req)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
	assert.Zero(t, store.calls["CreateEvaluation"])
	assert.Empty(t, s.Snapshot().Evaluations)
}

func TestStageForDate(t *testing.T) {
	s, _ := newState(t)
	ctx := context.Background()
	scanner := seedScanner(t, s)
	_, err := s.CreateStage(ctx, &dto.CreateStageRequest{Name: "IRM", Modality: "mri", StartDate: "2025-03-20", EndDate: "2025-05-20"})
	require.NoError(t, err)

	st, ok, err := s.StageForDate("2025-03-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, scanner.ID, st.ID)

	_, ok, err = s.StageForDate("2025-03-17")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.StageForDate("demain")
	assert.True(t, apperrors.IsValidation(err))
}

func TestWriteThenRefreshFailure_ReportsStaleSnapshot(t *testing.T) {
	s, store := newState(t)
	ctx := context.Background()
	st := seedScanner(t, s)
	before := s.Snapshot()

	store.failList = true
	saved, err := s.SaveNote(ctx, &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "good", Activities: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStaleSnapshot)
	assert.ErrorIs(t, err, apperrors.ErrStore)
	require.NotNil(t, saved, "the write was applied")
	assert.Len(t, store.notes, 1)
	assert.Equal(t, before, s.Snapshot())

	deleted, err := s.DeleteStage(ctx, st.ID)
	assert.True(t, deleted)
	assert.ErrorIs(t, err, ErrStaleSnapshot)
}

func TestCommandFailure_IsNotStale(t *testing.T) {
	s, store := newState(t)
	st := seedScanner(t, s)

	store.failOn["SaveNote"] = true
	_, err := s.SaveNote(context.Background(), &dto.SaveNoteRequest{StageID: st.ID, Date: "2025-01-15", Mood: "good", Activities: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStaleSnapshot)
}
