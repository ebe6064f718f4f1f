package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Question is a single multiple-choice item with one correct option.
type Question struct {
	ID           string   `json:"id" yaml:"id"`
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correct_index" yaml:"correct_index"`
	Explanation  string   `json:"explanation,omitempty" yaml:"explanation"`
	Category     string   `json:"category,omitempty" yaml:"category"`
	Difficulty   string   `json:"difficulty,omitempty" yaml:"difficulty"`
}

// PublicQuestion is what a learner sees before answering.
type PublicQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}

// Public strips the answer and explanation.
func (q Question) Public() PublicQuestion {
	return PublicQuestion{ID: q.ID, Question: q.Question, Options: q.Options, Category: q.Category}
}

// Validate checks that the question can be graded.
func (q Question) Validate() error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	case strings.TrimSpace(q.Question) == "":
		return fmt.Errorf("%w %q: missing text", ErrInvalidQuestion, q.ID)
	case len(q.Options) < 2:
		return fmt.Errorf("%w %q: needs at least two options, has %d", ErrInvalidQuestion, q.ID, len(q.Options))
	case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
		return fmt.Errorf("%w %q: correct index %d out of range", ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	return nil
}

// Result is the outcome of grading one answer.
type Result struct {
	QuestionID   string `json:"question_id"`
	Selected     int    `json:"selected"`
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation,omitempty"`
}

// Grade compares the selected option index with the correct one. There is
// no partial credit; an index outside the options is simply wrong.
func Grade(q Question, selected int) Result {
	return Result{
		QuestionID:   q.ID,
		Selected:     selected,
		Correct:      selected >= 0 && selected < len(q.Options) && selected == q.CorrectIndex,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}
}

// Unanswered marks a question the learner skipped.
const Unanswered = -1

// Summary is a graded quiz.
type Summary struct {
	Results    []Result `json:"results"`
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Passed     bool     `json:"passed"`
}

// Score grades every question in order. answers maps question id to the
// selected option; missing answers count as wrong. Percentage is rounded
// down and the quiz passes when it reaches passThreshold.
func Score(questions []Question, answers map[string]int, passThreshold int) Summary {
	s := Summary{Results: make([]Result, 0, len(questions)), Total: len(questions)}
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			selected = Unanswered
		}
		r := Grade(q, selected)
		if r.Correct {
			s.Correct++
		}
		s.Results = append(s.Results, r)
	}
	if s.Total > 0 {
		s.Percentage = s.Correct * 100 / s.Total
		s.Passed = s.Percentage >= passThreshold
	}
	return s
}
