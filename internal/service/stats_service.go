package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/dto"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/stats"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// StatsService mood statistics over the whole journal
type StatsService interface {
	Overview(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService creates a StatsService
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

// Overview computes the statistics from a fresh snapshot of both collections
func (s *statsService) Overview(ctx context.Context) (*dto.StatsResponse, error) {
	stages, notes, err := fetchSnapshot(ctx, s.repo)
	if err != nil {
		s.logger.Error("fetch journal snapshot failed", zap.Error(err))
		return nil, apperrors.Store(err)
	}

	ov := stats.Summarize(stages, notes)
	resp := &dto.StatsResponse{
		Global: toBreakdownResponse(ov.Global),
		Stages: make([]dto.StageStatsResponse, 0, len(ov.Stages)),
	}
	for _, st := range ov.Stages {
		resp.Stages = append(resp.Stages, toStageStatsResponse(st))
	}
	return resp, nil
}

// fetchSnapshot loads placements and notes concurrently
func fetchSnapshot(ctx context.Context, repo *repository.Repository) ([]model.Stage, []model.Note, error) {
	var (
		stages []model.Stage
		notes  []model.Note
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stages, err = repo.Stage.List(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = repo.Note.List(gctx, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return stages, notes, nil
}
