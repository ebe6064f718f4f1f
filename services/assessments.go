package services

import (
	"context"

	"go.uber.org/zap"

	"elec-mate/metrics"
	"elec-mate/models"
)

// AssessmentService commits assessments and serves the saved list.
type AssessmentService struct {
	Store    Store
	Archiver *Archiver // nil when archiving is disabled
	Logger   *zap.Logger
}

func NewAssessmentService(store Store, archiver *Archiver, logger *zap.Logger) *AssessmentService {
	return &AssessmentService{Store: store, Archiver: archiver, Logger: logger}
}

// Commit archives the document (best effort) and then writes the record.
// The record is written exactly once, with the archive link when one exists.
// When the write fails the uploaded document is withdrawn again.
func (s *AssessmentService) Commit(ctx context.Context, a *models.Assessment) error {
	log := s.Logger.With(zap.String("assessment_id", a.ID), zap.String("substance", a.SubstanceName))
	if s.Archiver != nil {
		if err := s.Archiver.Archive(ctx, a); err != nil {
			metrics.ArchiveFailures.Inc()
			log.Warn("Assessment document upload failed, saving without archive link", zap.Error(err))
		}
	}
	if err := s.Store.CreateAssessment(ctx, a); err != nil {
		log.Error("Saving assessment failed", zap.Error(err))
		if s.Archiver != nil {
			if werr := s.Archiver.Withdraw(ctx, a); werr != nil {
				log.Warn("Removing orphaned assessment document failed", zap.String("key", s.Archiver.Key(a.ID)), zap.Error(werr))
			}
		}
		return err
	}
	metrics.AssessmentsSaved.Inc()
	log.Info("Assessment saved", zap.String("risk_rating", a.RiskRating), zap.Time("review_date", a.ReviewDate))
	return nil
}

func (s *AssessmentService) Get(ctx context.Context, id string) (models.Assessment, error) {
	return s.Store.GetAssessment(ctx, id)
}

// List returns saved assessments, newest first.
func (s *AssessmentService) List(ctx context.Context, limit int) ([]models.Assessment, error) {
	return s.Store.ListAssessments(ctx, limit)
}
