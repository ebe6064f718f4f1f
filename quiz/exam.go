package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ExamConfig describes a mock exam drawn from a question bank.
type ExamConfig struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	TotalQuestions int      `json:"total_questions" yaml:"total_questions"`
	TimeLimit      int      `json:"time_limit_seconds" yaml:"time_limit_seconds"`
	PassThreshold  int      `json:"pass_threshold" yaml:"pass_threshold"`
	ExitPath       string   `json:"exit_path,omitempty" yaml:"exit_path"`
	Categories     []string `json:"categories" yaml:"categories"`
}

// Duration returns the time limit, zero meaning untimed.
func (c ExamConfig) Duration() time.Duration {
	return time.Duration(c.TimeLimit) * time.Second
}

// Validate checks the configuration against its bank.
func (c ExamConfig) Validate(bank []Question) error {
	if c.ID == "" {
		return fmt.Errorf("exam: missing id")
	}
	if c.TotalQuestions <= 0 {
		return fmt.Errorf("exam %q: total_questions must be positive", c.ID)
	}
	if c.PassThreshold < 0 || c.PassThreshold > 100 {
		return fmt.Errorf("exam %q: pass_threshold %d outside 0-100", c.ID, c.PassThreshold)
	}
	if len(bank) < c.TotalQuestions {
		return fmt.Errorf("exam %q: bank has %d questions, needs %d", c.ID, len(bank), c.TotalQuestions)
	}
	known := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		known[cat] = true
	}
	for _, q := range bank {
		if len(c.Categories) > 0 && !known[q.Category] {
			return fmt.Errorf("exam %q: question %q has unlisted category %q", c.ID, q.ID, q.Category)
		}
	}
	return nil
}

// SelectBalanced draws n distinct questions spread evenly over categories.
// Each category gets n/len(categories) questions, the first n%len(categories)
// categories one more. Categories that run short are topped up from the
// remaining pool. The result is shuffled.
func SelectBalanced(bank []Question, n int, categories []string, rng *rand.Rand) []Question {
	if n <= 0 || len(bank) == 0 {
		return []Question{}
	}
	if n > len(bank) {
		n = len(bank)
	}

	picked := make([]bool, len(bank))
	out := make([]Question, 0, n)

	if len(categories) > 0 {
		byCat := make(map[string][]int, len(categories))
		for i, q := range bank {
			byCat[q.Category] = append(byCat[q.Category], i)
		}
		per, rem := n/len(categories), n%len(categories)
		for ci, cat := range categories {
			want := per
			if ci < rem {
				want++
			}
			idx := byCat[cat]
			rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
			for _, i := range idx {
				if want == 0 || len(out) == n {
					break
				}
				if picked[i] {
					continue
				}
				picked[i] = true
				out = append(out, bank[i])
				want--
			}
		}
	}

	if len(out) < n {
		var pool []int
		for i := range bank {
			if !picked[i] {
				pool = append(pool, i)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, i := range pool[:n-len(out)] {
			out = append(out, bank[i])
		}
	}

	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Answer is one submitted exam answer.
type Answer struct {
	QuestionID string `json:"question_id" binding:"required"`
	Selected   int    `json:"selected"`
}

// ScoreExam grades the submitted answers against the bank using the exam's
// pass threshold. Every answer must name a question in the bank. The exam is
// marked out of at least cfg.TotalQuestions; questions left out of the
// submission count as wrong.
func ScoreExam(cfg ExamConfig, bank []Question, answers []Answer) (Summary, error) {
	byID := make(map[string]Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}
	questions := make([]Question, 0, len(answers))
	selected := make(map[string]int, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return Summary{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, a.QuestionID)
		}
		if _, dup := selected[a.QuestionID]; dup {
			return Summary{}, fmt.Errorf("duplicate answer for question %q", a.QuestionID)
		}
		questions = append(questions, q)
		selected[a.QuestionID] = a.Selected
	}
	s := Score(questions, selected, cfg.PassThreshold)
	if s.Total < cfg.TotalQuestions {
		s.Total = cfg.TotalQuestions
		s.Percentage = s.Correct * 100 / s.Total
		s.Passed = s.Percentage >= cfg.PassThreshold
	}
	return s, nil
}
