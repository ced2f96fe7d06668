package timeline

import "strings"

// Key is a key-down event. Name follows the DOM key names: "c", "v", "z",
// "Delete", "Backspace", " " or "Space".
type Key struct {
	Name  string `json:"name" yaml:"name"`
	Ctrl  bool   `json:"ctrl,omitempty" yaml:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty" yaml:"meta,omitempty"`
	Shift bool   `json:"shift,omitempty" yaml:"shift,omitempty"`
}

func (k Key) command() bool { return k.Ctrl || k.Meta }

// KeyDown runs the shortcut bound to k and reports whether it was consumed.
func (e *Engine) KeyDown(k Key) bool {
	name := strings.ToLower(k.Name)
	selected, hasSelection := e.Selected()

	switch {
	case k.command() && name == "z" && k.Shift:
		return e.Redo()
	case k.command() && name == "z":
		return e.Undo()
	case k.command() && name == "c":
		return hasSelection && e.Copy(selected)
	case k.command() && name == "v":
		return hasSelection && e.Paste()
	case !k.command() && (name == "delete" || name == "backspace"):
		return hasSelection && e.Delete(selected)
	case !k.command() && (name == " " || name == "space"):
		e.sink.TogglePlay()
		return true
	}
	return false
}
