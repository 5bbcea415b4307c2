package service

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
)

var errDBDown = errors.New("connection refused")

// ── Mock StageRepository ──

type mockStageRepo struct {
	stages  map[uint]*model.Stage
	nextID  uint
	err     error // returned by every call when set
	creates int
	updates int

	// cascade targets, set by newMockRepository
	notes *mockNoteRepo
	evals *mockEvaluationRepo
}

func newMockStageRepo() *mockStageRepo {
	return &mockStageRepo{stages: make(map[uint]*model.Stage), nextID: 1}
}

func (m *mockStageRepo) Create(_ context.Context, stage *model.Stage) error {
	if m.err != nil {
		return m.err
	}
	m.creates++
	stage.StageID = m.nextID
	m.nextID++
	cp := *stage
	m.stages[stage.StageID] = &cp
	return nil
}

func (m *mockStageRepo) GetByID(_ context.Context, id uint) (*model.Stage, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.stages[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) List(_ context.Context, modality model.Modality) ([]model.Stage, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Stage
	for _, s := range m.stages {
		if modality != "" && s.Modality != modality {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].StageID > result[j].StageID
	})
	return result, nil
}

func (m *mockStageRepo) Update(_ context.Context, stage *model.Stage) error {
	if m.err != nil {
		return m.err
	}
	m.updates++
	cp := *stage
	m.stages[stage.StageID] = &cp
	return nil
}

func (m *mockStageRepo) Delete(_ context.Context, id uint) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.stages[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.stages, id)
	if m.notes != nil {
		for nid, n := range m.notes.notes {
			if n.StageID == id {
				delete(m.notes.notes, nid)
			}
		}
	}
	if m.evals != nil {
		kept := m.evals.evals[:0]
		for _, e := range m.evals.evals {
			if e.StageID != id {
				kept = append(kept, e)
			}
		}
		m.evals.evals = kept
	}
	return nil
}

// ── Mock NoteRepository ──

type mockNoteRepo struct {
	notes   map[uint]*model.Note
	nextID  uint
	err     error
	upserts int
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[uint]*model.Note), nextID: 1}
}

func (m *mockNoteRepo) Upsert(_ context.Context, note *model.Note) error {
	if m.err != nil {
		return m.err
	}
	m.upserts++
	for _, n := range m.notes {
		if n.StageID == note.StageID && n.Date.Equal(note.Date) {
			note.NoteID = n.NoteID
			cp := *note
			m.notes[n.NoteID] = &cp
			return nil
		}
	}
	note.NoteID = m.nextID
	m.nextID++
	cp := *note
	m.notes[note.NoteID] = &cp
	return nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id uint) (*model.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	if n, ok := m.notes[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoteRepo) List(_ context.Context, stageID uint) ([]model.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Note
	for _, n := range m.notes {
		if stageID != 0 && n.StageID != stageID {
			continue
		}
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].NoteID > result[j].NoteID
	})
	return result, nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id uint) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.notes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.notes, id)
	return nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct {
	evals   []model.Evaluation
	nextID  uint
	err     error
	creates int
}

func newMockEvaluationRepo() *mockEvaluationRepo {
	return &mockEvaluationRepo{nextID: 1}
}

func (m *mockEvaluationRepo) Create(_ context.Context, eval *model.Evaluation) error {
	if m.err != nil {
		return m.err
	}
	m.creates++
	eval.EvaluationID = m.nextID
	m.nextID++
	m.evals = append(m.evals, *eval)
	return nil
}

func (m *mockEvaluationRepo) List(_ context.Context, stageID uint) ([]model.Evaluation, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Evaluation
	for _, e := range m.evals {
		if stageID != 0 && e.StageID != stageID {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// ── Helpers ──

type mockRepos struct {
	stage *mockStageRepo
	note  *mockNoteRepo
	eval  *mockEvaluationRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		stage: newMockStageRepo(),
		note:  newMockNoteRepo(),
		eval:  newMockEvaluationRepo(),
	}
	m.stage.notes = m.note
	m.stage.evals = m.eval
	return &repository.Repository{
		Stage:      m.stage,
		Note:       m.note,
		Evaluation: m.eval,
	}, m
}
