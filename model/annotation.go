package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Kind identifies the semantic type of an annotation mark
type Kind int

const (
	KindUnknown Kind = iota
	KindHighlight
	KindSquare
	KindText
)

// Kinds lists every content kind in the order marks are classified
var Kinds = []Kind{KindHighlight, KindSquare, KindText}

func (k Kind) String() string {
	switch k {
	case KindHighlight:
		return "highlight"
	case KindSquare:
		return "square"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseKind converts a lower-case kind name back to a Kind
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown annotation kind %q", s)
}

// MarshalJSON encodes the kind as its lower-case name
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a lower-case kind name
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Comment is the free-text note attached to an annotation.
// Either field is nil when the popup lacks the corresponding node.
type Comment struct {
	Author *string `json:"author"`
	Text   *string `json:"text"`
}

// IsEmpty returns true if neither author nor text was found
func (c Comment) IsEmpty() bool {
	return c.Author == nil && c.Text == nil
}

// Image is an encoded raster cut from a page
type Image struct {
	Data   []byte  `json:"data"`
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DataURL renders the image as a data: URL
func (i *Image) DataURL() string {
	return "data:" + i.Type + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ExtractedAnnotation is one surviving annotation mark together with the text
// and raster it covers. It is built once and never modified.
type ExtractedAnnotation struct {
	Region       Region   `json:"region"`
	ScaledRegion Region   `json:"scaledRegion"`
	LinesOfText  []string `json:"linesOfText"`
	Image        *Image   `json:"image"`
	Comment      Comment  `json:"comment"`
	Kind         Kind     `json:"kind"`
}

// PageExtraction holds the annotations of one page in mark order
type PageExtraction struct {
	Annotations []ExtractedAnnotation `json:"annotations"`
	Image       *Image                `json:"image"`
}

// DocumentExtraction holds the extraction of every page in source order
type DocumentExtraction struct {
	Pages []PageExtraction `json:"pages"`
}

// AnnotationCount returns the number of annotations across all pages
func (d DocumentExtraction) AnnotationCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Annotations)
	}
	return n
}
