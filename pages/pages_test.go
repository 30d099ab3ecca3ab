package pages_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/tsawler/annolift/model"
	"github.com/tsawler/annolift/pages"
	"github.com/tsawler/annolift/pages/pagestest"
)

func TestHasClass(t *testing.T) {
	tests := []struct {
		name  string
		class string
		query string
		want  bool
	}{
		{"exact", "highlightAnnotation", "highlightAnnotation", true},
		{"token", "popupWrapper hidden", "popupWrapper", true},
		{"prefix only", "highlightAnnotationX", "highlightAnnotation", false},
		{"missing", "", "popupWrapper", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &pagestest.Element{Attrs: map[string]string{"class": tt.class}}
			if got := pages.HasClass(el, tt.query); got != tt.want {
				t.Errorf("HasClass(%q, %q) = %v, want %v", tt.class, tt.query, got, tt.want)
			}
		})
	}
}

func TestCollaboratorError(t *testing.T) {
	err := fmt.Errorf("annotation 2: %w", pages.Collaborator("crop", io.ErrUnexpectedEOF))

	if !errors.Is(err, pages.ErrCollaborator) {
		t.Error("errors.Is(err, ErrCollaborator) = false, want true")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("errors.Is(err, io.ErrUnexpectedEOF) = false, want true")
	}

	var ce *pages.CollaboratorError
	if !errors.As(err, &ce) || ce.Op != "crop" {
		t.Errorf("errors.As() op = %v, want crop", ce)
	}
}

func TestCanvasArea(t *testing.T) {
	c := &pagestest.Canvas{Width: 1000, Height: 800}
	if got := pages.CanvasArea(c); got != 800000 {
		t.Errorf("CanvasArea() = %v, want 800000", got)
	}
}

func TestFakeElementLookup(t *testing.T) {
	mark := pagestest.Mark("squareAnnotation", model.NewRegion(0, 0, 1, 1), model.Point{}, "").
		With(pagestest.Popup("me", "note"))

	popup, ok := mark.FirstByClass(pages.ClassPopupWrapper)
	if !ok {
		t.Fatal("FirstByClass(popupWrapper) not found")
	}
	h1, ok := popup.FirstByTag("h1")
	if !ok || h1.Text() != "me" {
		t.Errorf("FirstByTag(h1) = %v, %v", h1, ok)
	}
	if _, ok := mark.FirstByTag("table"); ok {
		t.Error("FirstByTag(table) found, want none")
	}
}
