package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetColored(3, 2, '@', ColorRed)

	if got := s.Get(3, 2); got != '@' {
		t.Errorf("Get(3,2) = %q, want '@'", got)
	}
	cell := s.GetCell(3, 2)
	if cell.Color != ColorRed {
		t.Errorf("cell color = %v, want red", cell.Color)
	}
}

func TestScreenOutOfBoundsIgnored(t *testing.T) {
	s := NewScreen(10, 5)

	// None of these may panic or corrupt the buffer.
	s.Set(-1, 0, 'x')
	s.Set(0, -1, 'x')
	s.Set(10, 0, 'x')
	s.Set(0, 5, 'x')

	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("out-of-bounds Get = %q, want space", got)
	}
	if strings.ContainsRune(s.String(), 'x') {
		t.Error("out-of-bounds write leaked into the buffer")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "abcd", ColorGreen)

	s.Clear()

	if got := s.String(); got != "    \n    " {
		t.Errorf("Clear left content: %q", got)
	}
	if s.GetCell(0, 0).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawText(0, 0, "keep")
	s.DrawText(8, 3, "xx")

	s.Resize(6, 2)

	if got := s.Get(0, 0); got != 'k' {
		t.Errorf("content inside new bounds lost: got %q", got)
	}
	if s.Width() != 6 || s.Height() != 2 {
		t.Errorf("size = %dx%d, want 6x2", s.Width(), s.Height())
	}

	// Growing back fills new space with blanks.
	s.Resize(12, 4)
	if got := s.Get(8, 3); got != ' ' {
		t.Errorf("grown area should be blank, got %q", got)
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	if got := s.String(); got != "    abc    " {
		t.Errorf("centered text = %q", got)
	}
}

func TestDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(0, 0, 5, 4)

	want := "┌───┐\n│   │\n│   │\n└───┘"
	if got := s.String(); got != want {
		t.Errorf("box =\n%s\nwant\n%s", got, want)
	}
}
