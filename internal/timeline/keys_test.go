package timeline

import "testing"

func TestKeyDown(t *testing.T) {
	tests := []struct {
		name     string
		selected bool
		key      Key
		consumed bool
		segments int
	}{
		{"delete selected", true, Key{Name: "Delete"}, true, 1},
		{"backspace selected", true, Key{Name: "Backspace"}, true, 1},
		{"delete without selection", false, Key{Name: "Delete"}, false, 2},
		{"copy without selection", false, Key{Name: "c", Ctrl: true}, false, 2},
		{"copy then nothing pasted", true, Key{Name: "c", Meta: true}, true, 2},
		{"paste without clip", true, Key{Name: "v", Ctrl: true}, false, 2},
		{"undo at start", false, Key{Name: "z", Ctrl: true}, false, 2},
		{"plain letter", true, Key{Name: "x"}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(seg(0, 1, "a"), seg(2, 3, "b"))
			e := h.engine
			if tt.selected {
				e.Select(1)
			}
			if got := e.KeyDown(tt.key); got != tt.consumed {
				t.Fatalf("KeyDown(%+v) = %v, expected %v", tt.key, got, tt.consumed)
			}
			if e.Len() != tt.segments {
				t.Fatalf("expected %d segments, got %d", tt.segments, e.Len())
			}
		})
	}
}

func TestKeyboardCopyPasteUndoRedo(t *testing.T) {
	h := newHarness(seg(0, 1, "a"))
	e := h.engine
	e.Select(0)

	e.KeyDown(Key{Name: "c", Ctrl: true})
	e.KeyDown(Key{Name: "V", Ctrl: true})
	if e.Len() != 2 {
		t.Fatalf("expected pasted segment, got %d", e.Len())
	}

	e.KeyDown(Key{Name: "z", Meta: true})
	if e.Len() != 1 {
		t.Fatalf("expected undo to remove the paste")
	}
	e.KeyDown(Key{Name: "Z", Meta: true, Shift: true})
	if e.Len() != 2 {
		t.Fatalf("expected redo to restore the paste")
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	h := newHarness()
	for _, name := range []string{" ", "Space"} {
		if !h.engine.KeyDown(Key{Name: name}) {
			t.Fatalf("space must be consumed")
		}
	}
	if h.sink.toggles != 2 {
		t.Fatalf("expected 2 toggles, got %d", h.sink.toggles)
	}
}
