package content

import "fmt"

// NavLink points at a neighbouring section.
type NavLink struct {
	CourseID  string `json:"course_id"`
	ModuleID  string `json:"module_id"`
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Path      string `json:"path"`
}

// SectionPath is the route of a section page.
func SectionPath(courseID, sectionID string) string {
	return fmt.Sprintf("/courses/%s/sections/%s", courseID, sectionID)
}

// Navigation returns the previous and next sections of a course, crossing
// module boundaries. The first section has no previous link and the last no next.
func (l *Library) Navigation(courseID, sectionID string) (prev, next *NavLink, err error) {
	c, err := l.Course(courseID)
	if err != nil {
		return nil, nil, err
	}
	var chain []NavLink
	for _, m := range c.Modules {
		for _, s := range m.Sections {
			chain = append(chain, NavLink{
				CourseID:  c.ID,
				ModuleID:  m.ID,
				SectionID: s.ID,
				Title:     s.Title,
				Path:      SectionPath(c.ID, s.ID),
			})
		}
	}
	for i := range chain {
		if chain[i].SectionID != sectionID {
			continue
		}
		if i > 0 {
			p := chain[i-1]
			prev = &p
		}
		if i+1 < len(chain) {
			n := chain[i+1]
			next = &n
		}
		return prev, next, nil
	}
	return nil, nil, ErrSectionNotFound
}
