package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColor(3, 4, '◆', ColorBrightCyan)

	c := s.GetCell(3, 4)
	if c.Rune != '◆' || c.Color != ColorBrightCyan {
		t.Errorf("GetCell(3, 4) = %+v, expected diamond in bright cyan", c)
	}
	if s.Get(3, 4) != '◆' {
		t.Errorf("Get(3, 4) = %q, expected '◆'", s.Get(3, 4))
	}

	s.SetColor(-1, 0, 'A', ColorRed)
	s.SetColor(10, 0, 'A', ColorRed)
	s.SetColor(0, 10, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.GetCell(100, 100).Rune != ' ' {
		t.Error("out of bounds reads should return a blank")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(0, 0, 4, 4), '#', ColorGray)
	s.Clear()

	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("after Clear, screen = %q, expected blanks", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColor(7, 1, "Score", ColorYellow)

	if got := s.Row(1); got != "       Sco" {
		t.Errorf("Row(1) = %q, expected clipped text", got)
	}
	if s.GetCell(8, 1).Color != ColorYellow {
		t.Error("text color was not applied")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Squashed!", ColorRed)

	x := (20 - 9) / 2
	if !strings.HasPrefix(s.Row(1)[x:], "Squashed!") {
		t.Errorf("Row(1) = %q, expected centered text at %d", s.Row(1), x)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	expected := "┌────┐\n│    │\n│    │\n└────┘"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size after resize = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Row(0) = %q, content should survive shrinking", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Row(0) = %q, content should survive growing", s.Row(0))
	}
	if strings.TrimSpace(s.Row(5)) != "" {
		t.Errorf("Row(5) = %q, cropped rows should come back blank", s.Row(5))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Error("out of bounds row should be all spaces")
	}
}
