package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 3, '@', ColorRed)
	cell := s.GetCell(3, 3)
	if cell.Rune != '@' || cell.Color != ColorRed {
		t.Errorf("GetCell(3, 3) = %+v, expected '@' in red", cell)
	}

	// Plain Set uses the default color
	s.Set(4, 4, 'X')
	if s.GetCell(4, 4).Color != ColorDefault {
		t.Error("Set should use the default color")
	}

	// Out of bounds cell is a default-colored space
	cell = s.GetCell(-1, -1)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v, expected default space", cell)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorGreen)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != ' ' || cell.Color != ColorDefault {
				t.Errorf("After Clear, expected default space at (%d, %d), got %+v", x, y, cell)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 3, 'A')
	s.Set(9, 9, 'B')

	s.Resize(5, 5)
	if s.Width() != 5 || s.Height() != 5 {
		t.Errorf("after Resize = %dx%d, expected 5x5", s.Width(), s.Height())
	}
	if s.Get(2, 3) != 'A' {
		t.Error("content inside the new bounds should survive a resize")
	}

	s.Resize(20, 20)
	if s.Get(2, 3) != 'A' {
		t.Error("content should survive growing the screen")
	}
	if s.Get(9, 9) != ' ' {
		t.Error("content dropped by a shrink should not reappear after growing")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	expected := "Hello"
	for i, ch := range expected {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello") // Only "He" should fit
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	// "Hi" is 2 chars, centered in 20 chars should start at position 9
	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.Get(x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.Get(x, y))
			}
		}
	}
	if s.Get(1, 2) != ' ' || s.Get(5, 2) != ' ' {
		t.Error("DrawRect should not spill outside the rect")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	if s.Get(1, 1) != '┌' || s.Get(5, 1) != '┐' {
		t.Error("DrawBox top corners wrong")
	}
	if s.Get(1, 4) != '└' || s.Get(5, 4) != '┘' {
		t.Error("DrawBox bottom corners wrong")
	}
	if s.Get(3, 1) != '─' || s.Get(3, 4) != '─' {
		t.Error("DrawBox horizontal edges wrong")
	}
	if s.Get(1, 2) != '│' || s.Get(5, 3) != '│' {
		t.Error("DrawBox vertical edges wrong")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("DrawBox should not fill the interior")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawHLine(2, 1, 5, '=')

	for x := 2; x < 7; x++ {
		if s.Get(x, 1) != '=' {
			t.Errorf("DrawHLine: expected '=' at (%d, 1), got %q", x, s.Get(x, 1))
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(7, 1) != ' ' {
		t.Error("DrawHLine should stop at the requested length")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	out := s.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("String() produced %d lines, expected 2", len(lines))
	}
	if lines[0] != "abc" || lines[1] != "de " {
		t.Errorf("String() = %q, expected \"abc\\nde \"", out)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(1, 1, "hi")

	if got := s.Row(1); got != " hi  " {
		t.Errorf("Row(1) = %q, expected \" hi  \"", got)
	}
	if got := s.Row(-1); got != "     " {
		t.Errorf("out of bounds Row should be blank, got %q", got)
	}
	if got := s.Row(10); got != "     " {
		t.Errorf("out of bounds Row should be blank, got %q", got)
	}
}
