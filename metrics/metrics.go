package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	AssessmentsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coshh_assessments_saved_total",
		Help: "Total number of COSHH assessments committed.",
	})
	ArchiveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coshh_archive_failures_total",
		Help: "Total number of assessment documents that could not be uploaded.",
	})
	DraftsOpen = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coshh_drafts_open",
		Help: "Number of assessment drafts currently held in memory.",
	})
	AssessmentsDue = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coshh_assessments_due_for_review",
		Help: "Assessments due for review within the configured window, as of the last scan.",
	})
	QuizSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_submissions_total",
		Help: "Total number of graded quiz and exam submissions.",
	}, []string{"kind", "result"})
)

func init() {
	prometheus.MustRegister(AssessmentsSaved, ArchiveFailures, DraftsOpen, AssessmentsDue, QuizSubmissions)
}

// Result is the label value for a pass or fail.
func Result(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
