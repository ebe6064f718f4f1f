package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"elec-mate/quiz"
)

//go:embed data/*.yaml
var embedded embed.FS

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrExamNotFound     = errors.New("exam not found")
	ErrGuideNotFound    = errors.New("guide not found")
)

// SEO is the title/description pair set on every page.
type SEO struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Category struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Icon        IconKind `json:"icon" yaml:"icon"`
}

type Course struct {
	ID          string   `json:"id" yaml:"id"`
	Category    string   `json:"category" yaml:"category"`
	Title       string   `json:"title" yaml:"title"`
	Level       string   `json:"level" yaml:"level"`
	Description string   `json:"description" yaml:"description"`
	Modules     []Module `json:"modules" yaml:"modules"`
}

type Module struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

type Section struct {
	ID            string          `json:"id" yaml:"id"`
	Title         string          `json:"title" yaml:"title"`
	SEO           SEO             `json:"seo" yaml:"seo"`
	PassThreshold int             `json:"pass_threshold" yaml:"pass_threshold"`
	Checks        []quiz.Question `json:"-" yaml:"inline_checks"`
	Quiz          []quiz.Question `json:"-" yaml:"quiz"`
}

// Check returns the inline check with the given id.
func (s Section) Check(id string) (quiz.Question, error) {
	for _, q := range s.Checks {
		if q.ID == id {
			return q, nil
		}
	}
	return quiz.Question{}, ErrQuestionNotFound
}

// Exam is a mock exam configuration together with its question bank.
type Exam struct {
	quiz.ExamConfig `yaml:",inline"`
	Questions       []quiz.Question `json:"-" yaml:"questions"`
}

// Guide is a standalone reference page.
type Guide struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	SEO     SEO    `json:"seo" yaml:"seo"`
	Summary string `json:"summary" yaml:"summary"`
}

// document is the shape of one YAML file; every key is optional.
type document struct {
	Categories []Category `yaml:"categories"`
	Courses    []Course   `yaml:"courses"`
	Exams      []Exam     `yaml:"exams"`
	Guides     []Guide    `yaml:"guides"`
}

// Library is the read-only course catalogue. It is safe for concurrent reads.
type Library struct {
	Categories []Category
	Courses    []Course
	Exams      []Exam
	Guides     []Guide

	courses map[string]int
	exams   map[string]int
	guides  map[string]int
}

// LoadEmbedded loads the library shipped inside the binary.
func LoadEmbedded() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// LoadDir loads every .yaml/.yml file in dir.
func LoadDir(dir string) (*Library, error) {
	return Load(os.DirFS(dir))
}

// Load merges every YAML file at the root of fsys, in name order, and
// validates the result.
func Load(fsys fs.FS) (*Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	lib := &Library{}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		lib.Categories = append(lib.Categories, doc.Categories...)
		lib.Courses = append(lib.Courses, doc.Courses...)
		lib.Exams = append(lib.Exams, doc.Exams...)
		lib.Guides = append(lib.Guides, doc.Guides...)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	lib.index()
	return lib, nil
}

func (l *Library) index() {
	l.courses = make(map[string]int, len(l.Courses))
	for i, c := range l.Courses {
		l.courses[c.ID] = i
	}
	l.exams = make(map[string]int, len(l.Exams))
	for i, e := range l.Exams {
		l.exams[e.ID] = i
	}
	l.guides = make(map[string]int, len(l.Guides))
	for i, g := range l.Guides {
		l.guides[g.ID] = i
	}
}

// Validate reports every structural problem in the library at once.
func (l *Library) Validate() error {
	var errs []error
	seen := func(kind string) func(id string) {
		ids := map[string]bool{}
		return func(id string) {
			if strings.TrimSpace(id) == "" {
				errs = append(errs, fmt.Errorf("%s with empty id", kind))
				return
			}
			if ids[id] {
				errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
			}
			ids[id] = true
		}
	}

	categoryID := seen("category")
	categories := map[string]bool{}
	for _, c := range l.Categories {
		categoryID(c.ID)
		categories[c.ID] = true
		if _, ok := iconNames[c.Icon]; !ok {
			errs = append(errs, fmt.Errorf("category %q: unknown icon %q", c.ID, c.Icon))
		}
	}

	courseID := seen("course")
	for _, c := range l.Courses {
		courseID(c.ID)
		if !categories[c.Category] {
			errs = append(errs, fmt.Errorf("course %q: unknown category %q", c.ID, c.Category))
		}
		sectionID := seen("section in course " + c.ID)
		for _, m := range c.Modules {
			for _, s := range m.Sections {
				sectionID(s.ID)
				if s.SEO.Title == "" {
					errs = append(errs, fmt.Errorf("section %s/%s: missing SEO title", c.ID, s.ID))
				}
				checkID := seen("inline check in " + c.ID + "/" + s.ID)
				for _, q := range s.Checks {
					checkID(q.ID)
					if err := q.Validate(); err != nil {
						errs = append(errs, fmt.Errorf("section %s/%s: %w", c.ID, s.ID, err))
					}
				}
				quizID := seen("quiz question in " + c.ID + "/" + s.ID)
				for _, q := range s.Quiz {
					quizID(q.ID)
					if err := q.Validate(); err != nil {
						errs = append(errs, fmt.Errorf("section %s/%s: %w", c.ID, s.ID, err))
					}
				}
			}
		}
	}

	examID := seen("exam")
	for _, e := range l.Exams {
		examID(e.ID)
		qid := seen("question in exam " + e.ID)
		for _, q := range e.Questions {
			qid(q.ID)
			if err := q.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("exam %s: %w", e.ID, err))
			}
		}
		if err := e.ExamConfig.Validate(e.Questions); err != nil {
			errs = append(errs, err)
		}
	}

	guideID := seen("guide")
	for _, g := range l.Guides {
		guideID(g.ID)
	}
	return errors.Join(errs...)
}

// Course returns the course with the given id.
func (l *Library) Course(id string) (Course, error) {
	i, ok := l.courses[id]
	if !ok {
		return Course{}, ErrCourseNotFound
	}
	return l.Courses[i], nil
}

// CoursesIn lists the courses of a category; an empty id lists all.
func (l *Library) CoursesIn(category string) []Course {
	out := make([]Course, 0, len(l.Courses))
	for _, c := range l.Courses {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Section returns a section of a course.
func (l *Library) Section(courseID, sectionID string) (Section, error) {
	c, err := l.Course(courseID)
	if err != nil {
		return Section{}, err
	}
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			if s.ID == sectionID {
				return s, nil
			}
		}
	}
	return Section{}, ErrSectionNotFound
}

// Exam returns a mock exam by id.
func (l *Library) Exam(id string) (Exam, error) {
	i, ok := l.exams[id]
	if !ok {
		return Exam{}, ErrExamNotFound
	}
	return l.Exams[i], nil
}

// Guide returns a guide by id.
func (l *Library) Guide(id string) (Guide, error) {
	i, ok := l.guides[id]
	if !ok {
		return Guide{}, ErrGuideNotFound
	}
	return l.Guides[i], nil
}
