package models

import (
	"encoding/json"
	"time"
)

// AnnotationType is the fixed vocabulary of overlay kinds.
type AnnotationType string

const (
	AnnotationPin    AnnotationType = "pin"
	AnnotationCircle AnnotationType = "circle"
	AnnotationRect   AnnotationType = "rect"
	AnnotationPen    AnnotationType = "pen"
	AnnotationLaser  AnnotationType = "laser"
)

// Valid reports whether the type is part of the known vocabulary.
func (t AnnotationType) Valid() bool {
	switch t {
	case AnnotationPin, AnnotationCircle, AnnotationRect, AnnotationPen, AnnotationLaser:
		return true
	}
	return false
}

// Annotation is an instructor-authored overlay bound to one page.
// Data carries type-specific geometry and is passed through verbatim.
// Temporary annotations (laser traces) are a rendering hint for
// clients; the server never expires them itself.
type Annotation struct {
	ID         string          `json:"id"`
	PageNumber int             `json:"page_number"`
	Type       AnnotationType  `json:"type"`
	Data       json.RawMessage `json:"data"`
	Timestamp  time.Time       `json:"timestamp"`
	Temporary  bool            `json:"temporary"`
}
