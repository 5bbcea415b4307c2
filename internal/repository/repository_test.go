package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
)

func setupRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Stage{}, &model.Note{}, &model.Evaluation{}))
	return repository.NewRepository(db), db
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func createStage(t *testing.T, repo *repository.Repository, name string, modality model.Modality, start, end string) *model.Stage {
	t.Helper()
	stage := &model.Stage{
		Name:      name,
		Modality:  modality,
		StartDate: date(start),
		EndDate:   date(end),
	}
	require.NoError(t, repo.Stage.Create(context.Background(), stage))
	require.NotZero(t, stage.StageID)
	return stage
}

func TestStageRepo_CRUD(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	stage := createStage(t, repo, "CHU Bordeaux - Scanner", model.ModalityCT, "2025-01-15", "2025-03-15")

	got, err := repo.Stage.GetByID(ctx, stage.StageID)
	require.NoError(t, err)
	assert.Equal(t, "CHU Bordeaux - Scanner", got.Name)
	assert.True(t, got.StartDate.Equal(date("2025-01-15")))

	got.Supervisor = "Dr Martin"
	require.NoError(t, repo.Stage.Update(ctx, got))

	again, err := repo.Stage.GetByID(ctx, stage.StageID)
	require.NoError(t, err)
	assert.Equal(t, "Dr Martin", again.Supervisor)

	_, err = repo.Stage.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStageRepo_ListOrderAndFilter(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	createStage(t, repo, "Scanner", model.ModalityCT, "2025-01-15", "2025-03-15")
	createStage(t, repo, "IRM", model.ModalityMRI, "2025-03-20", "2025-05-20")
	createStage(t, repo, "Radiothérapie", model.ModalityRadiotherapy, "2025-06-01", "2025-08-01")

	all, err := repo.Stage.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Radiothérapie", all[0].Name, "newest start date first")
	assert.Equal(t, "Scanner", all[2].Name)

	mri, err := repo.Stage.List(ctx, model.ModalityMRI)
	require.NoError(t, err)
	require.Len(t, mri, 1)
	assert.Equal(t, "IRM", mri[0].Name)
}

func TestNoteRepo_UpsertOverwritesSameDay(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()
	stage := createStage(t, repo, "Scanner", model.ModalityCT, "2025-01-15", "2025-03-15")

	first := &model.Note{
		StageID:    stage.StageID,
		Date:       date("2025-01-16"),
		Mood:       model.MoodAverage,
		Activities: "Scanner abdominopelvien",
	}
	require.NoError(t, repo.Note.Upsert(ctx, first))
	require.NotZero(t, first.NoteID)

	second := &model.Note{
		StageID:     stage.StageID,
		Date:        date("2025-01-16"),
		Mood:        model.MoodExcellent,
		Reflections: "Finalement une super journée",
	}
	require.NoError(t, repo.Note.Upsert(ctx, second))

	assert.Equal(t, first.NoteID, second.NoteID, "same (stage, date) keeps the row identity")
	assert.Equal(t, model.MoodExcellent, second.Mood)
	assert.Equal(t, "", second.Activities, "overwrite replaces every content field")

	var count int64
	require.NoError(t, db.Model(&model.Note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNoteRepo_UpsertDifferentDays(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	stage := createStage(t, repo, "Scanner", model.ModalityCT, "2025-01-15", "2025-03-15")

	for _, d := range []string{"2025-01-15", "2025-01-16", "2025-01-17"} {
		require.NoError(t, repo.Note.Upsert(ctx, &model.Note{
			StageID:    stage.StageID,
			Date:       date(d),
			Mood:       model.MoodGood,
			Activities: "journée " + d,
		}))
	}

	notes, err := repo.Note.List(ctx, stage.StageID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.True(t, notes[0].Date.Equal(date("2025-01-17")), "newest first")
}

func TestNoteRepo_Delete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	stage := createStage(t, repo, "Scanner", model.ModalityCT, "2025-01-15", "2025-03-15")

	note := &model.Note{StageID: stage.StageID, Date: date("2025-01-15"), Mood: model.MoodGood, Lessons: "x"}
	require.NoError(t, repo.Note.Upsert(ctx, note))

	require.NoError(t, repo.Note.Delete(ctx, note.NoteID))
	_, err := repo.Note.GetByID(ctx, note.NoteID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Note.Delete(ctx, note.NoteID), gorm.ErrRecordNotFound)
}

func TestStageRepo_DeleteCascades(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	doomed := createStage(t, repo, "Scanner", model.ModalityCT, "2025-01-15", "2025-03-15")
	kept := createStage(t, repo, "IRM", model.ModalityMRI, "2025-03-20", "2025-05-20")

	for _, st := range []*model.Stage{doomed, kept} {
		require.NoError(t, repo.Note.Upsert(ctx, &model.Note{
			StageID: st.StageID, Date: st.StartDate, Mood: model.MoodGood, Activities: "premier jour",
		}))
		require.NoError(t, repo.Evaluation.Create(ctx, &model.Evaluation{
			StageID: st.StageID, Date: st.StartDate, Scores: []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, TotalScore: 40,
		}))
	}

	require.NoError(t, repo.Stage.Delete(ctx, doomed.StageID))

	notes, err := repo.Note.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, kept.StageID, notes[0].StageID)

	evals, err := repo.Evaluation.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, kept.StageID, evals[0].StageID)

	assert.ErrorIs(t, repo.Stage.Delete(ctx, doomed.StageID), gorm.ErrRecordNotFound)
}

func TestEvaluationRepo_ScoresRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	stage := createStage(t, repo, "IRM", model.ModalityMRI, "2025-03-20", "2025-05-20")

	eval := &model.Evaluation{
		StageID:    stage.StageID,
		Date:       date("2025-04-01"),
		Scores:     []int{0, 1, 2, 3, 4, 4, 3, 2, 1, 0},
		TotalScore: 20,
	}
	require.NoError(t, repo.Evaluation.Create(ctx, eval))

	evals, err := repo.Evaluation.List(ctx, stage.StageID)
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 4, 3, 2, 1, 0}, []int(evals[0].Scores))
	assert.Equal(t, 20, evals[0].TotalScore)
}
