package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"elec-mate/coshh"
	"elec-mate/metrics"
	"elec-mate/models"
)

// ReviewReport splits assessments needing attention into those already past
// their review date and those falling due inside the window.
type ReviewReport struct {
	AsOf    time.Time           `json:"as_of"`
	Window  int                 `json:"window_days"`
	Overdue []models.Assessment `json:"overdue"`
	DueSoon []models.Assessment `json:"due_soon"`
}

// ReviewService finds assessments approaching their annual review.
type ReviewService struct {
	Store      Store
	WindowDays int
	Logger     *zap.Logger
	now        func() time.Time
}

func NewReviewService(store Store, windowDays int, logger *zap.Logger) *ReviewService {
	return &ReviewService{Store: store, WindowDays: windowDays, Logger: logger, now: time.Now}
}

// Scan builds the current report and publishes the due count as a gauge.
// Within each list the highest risk rating comes first, then the earliest
// review date.
func (r *ReviewService) Scan(ctx context.Context) (ReviewReport, error) {
	now := r.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	window := time.Duration(r.WindowDays) * 24 * time.Hour
	report := ReviewReport{
		AsOf:    today,
		Window:  r.WindowDays,
		Overdue: []models.Assessment{},
		DueSoon: []models.Assessment{},
	}

	due, err := r.Store.DueForReview(ctx, today.AddDate(0, 0, r.WindowDays))
	if err != nil {
		return report, err
	}
	for _, a := range due {
		switch {
		case coshh.Overdue(a.ReviewDate, now):
			report.Overdue = append(report.Overdue, a)
		case coshh.DueWithin(a.ReviewDate, now, window):
			report.DueSoon = append(report.DueSoon, a)
		}
	}
	bySeverity(report.Overdue)
	bySeverity(report.DueSoon)
	metrics.AssessmentsDue.Set(float64(len(report.Overdue) + len(report.DueSoon)))
	return report, nil
}

// bySeverity relies on the store returning soonest first and keeps that
// order between assessments of equal rating.
func bySeverity(list []models.Assessment) {
	sort.SliceStable(list, func(i, j int) bool {
		return coshh.RiskRating(list[i].RiskRating).Severity() > coshh.RiskRating(list[j].RiskRating).Severity()
	})
}

// RunReviewJob is the cron entry point.
func (r *ReviewService) RunReviewJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	r.Logger.Info("Starting review scan", zap.Int("window_days", r.WindowDays))
	report, err := r.Scan(ctx)
	if err != nil {
		r.Logger.Error("Review scan failed", zap.Error(err))
		return
	}
	for _, a := range report.Overdue {
		r.Logger.Warn("Assessment overdue for review",
			zap.String("assessment_id", a.ID),
			zap.String("substance", a.SubstanceName),
			zap.Time("review_date", a.ReviewDate))
	}
	r.Logger.Info("Review scan finished",
		zap.Int("overdue", len(report.Overdue)),
		zap.Int("due_soon", len(report.DueSoon)))
}
