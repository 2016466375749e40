// Package activity models the content a learner can take part in: scheduled
// sessions and curated courses share an identity, a title and a description.
package activity

import (
	"fmt"
	"time"
)

// Kind discriminates the activity variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindSession
	KindCourse
)

func (k Kind) String() string {
	switch k {
	case KindSession:
		return "SESSION"
	case KindCourse:
		return "COURSE"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "SESSION":
		*k = KindSession
	case "COURSE":
		*k = KindCourse
	default:
		return fmt.Errorf("unknown practice type %q", string(b))
	}
	return nil
}

// Activity holds the fields every variant carries.
type Activity struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Kind        Kind   `json:"practiceType"`
}

// PracticeType is the client-facing name of the variant.
func (a Activity) PracticeType() string {
	return a.Kind.String()
}

// Practice is anything a learner can be given with a recommended length.
type Practice interface {
	PracticeType() string
	Duration() time.Duration
}

// Course is a curated, multi-part program. Courses are not persisted.
type Course struct {
	Activity
	Instructor      string `json:"instructor"`
	Level           string `json:"level"`
	DurationMinutes int    `json:"durationMinutes"`
}

// NewCourse builds a Course with its Kind set.
func NewCourse(id int64, title, description, instructor, level string, durationMinutes int) Course {
	return Course{
		Activity: Activity{
			ID:          id,
			Title:       title,
			Description: description,
			Kind:        KindCourse,
		},
		Instructor:      instructor,
		Level:           level,
		DurationMinutes: durationMinutes,
	}
}

// Category derives the course category from its level, e.g. "Beginner Course".
func (c Course) Category() string {
	return c.Level + " Course"
}

func (c Course) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// TotalDuration sums the recommended length of ps.
func TotalDuration(ps ...Practice) time.Duration {
	var total time.Duration
	for _, p := range ps {
		total += p.Duration()
	}
	return total
}
