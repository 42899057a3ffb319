package browser

import (
	"fmt"
	"strings"
	"testing"
)

func makeRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{ID: fmt.Sprintf("r%d", i), Title: fmt.Sprintf("Row %d", i)}
	}
	return rows
}

func TestCursorStartsAtTop(t *testing.T) {
	m := New()
	m.SetRows(makeRows(5))

	if got := m.Cursor(); got != 0 {
		t.Errorf("Cursor() = %d, want 0", got)
	}
	sel, ok := m.Selected()
	if !ok || sel.ID != "r0" {
		t.Errorf("Selected() = %+v, %v, want r0", sel, ok)
	}
}

func TestEmptyCursor(t *testing.T) {
	m := New()

	if got := m.Cursor(); got != -1 {
		t.Errorf("Cursor() on empty list = %d, want -1", got)
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty list reported ok")
	}
}

func TestCursorClampsAtEnds(t *testing.T) {
	m := New()
	m.SetRows(makeRows(3))

	m.CursorUp()
	if got := m.Cursor(); got != 0 {
		t.Errorf("Cursor() after up at top = %d, want 0", got)
	}

	for range 10 {
		m.CursorDown()
	}
	if got := m.Cursor(); got != 2 {
		t.Errorf("Cursor() after overshooting down = %d, want 2", got)
	}
}

func TestSetRowsResetsCursor(t *testing.T) {
	m := New()
	m.SetRows(makeRows(10))
	m.CursorDown()
	m.CursorDown()

	m.SetRows(makeRows(4))
	if got := m.Cursor(); got != 0 {
		t.Errorf("Cursor() after SetRows = %d, want 0", got)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m := New()
	m.SetRows(makeRows(20))
	m.SetSize(40, 5)

	m.GotoBottom()
	view := m.View()
	if !strings.Contains(view, "Row 19") {
		t.Errorf("view after GotoBottom missing last row:\n%s", view)
	}
	if strings.Contains(view, "Row 0\n") {
		t.Errorf("view after GotoBottom still shows first row:\n%s", view)
	}

	m.GotoTop()
	view = m.View()
	if !strings.Contains(view, "Row 0") {
		t.Errorf("view after GotoTop missing first row:\n%s", view)
	}
}

func TestPageMovement(t *testing.T) {
	m := New()
	m.SetRows(makeRows(20))
	m.SetSize(40, 5)

	m.PageDown()
	if got := m.Cursor(); got != 5 {
		t.Errorf("Cursor() after PageDown = %d, want 5", got)
	}
	m.PageUp()
	if got := m.Cursor(); got != 0 {
		t.Errorf("Cursor() after PageUp = %d, want 0", got)
	}
}

func TestViewHeightWindow(t *testing.T) {
	m := New()
	m.SetRows(makeRows(20))
	m.SetSize(40, 5)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 5 {
		t.Errorf("View() rendered %d lines, want 5", len(lines))
	}
}
