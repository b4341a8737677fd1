package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/piwi3910/packassist/internal/selection"
)

type commandKind int

const (
	cmdStep   commandKind = iota // Move the selection
	cmdShift                     // Move the selected sample
	cmdInsert                    // Insert blanks next to the selection
	cmdRemove                    // Remove the selected sample
)

// keyCommand is a list operation bound to a key.
type keyCommand struct {
	kind  commandKind
	dir   selection.Direction
	step  selection.Step
	multi bool
}

// resolveKey maps a key and its modifiers to a command.
//
//	arrows          step by one sample
//	Shift+arrows    step by one box row
//	Ctrl+arrows     jump to the first or last sample
//	Alt+arrows      move the selected sample (Alt+Shift by a box row)
//	Enter           next sample
//	Insert          blank after the selection (Shift: before, Ctrl: a whole row)
//	Delete          remove the selected sample
func resolveKey(key fyne.KeyName, mod fyne.KeyModifier) (keyCommand, bool) {
	switch key {
	case fyne.KeyLeft, fyne.KeyUp, fyne.KeyRight, fyne.KeyDown:
		dir := selection.Forward
		if key == fyne.KeyLeft || key == fyne.KeyUp {
			dir = selection.Backward
		}
		step := selection.Unit
		if mod&fyne.KeyModifierShift != 0 {
			step = selection.BoxRow
		}
		if mod&fyne.KeyModifierAlt != 0 {
			return keyCommand{kind: cmdShift, dir: dir, step: step}, true
		}
		if mod&fyne.KeyModifierControl != 0 {
			step = selection.Edge
		}
		return keyCommand{kind: cmdStep, dir: dir, step: step}, true
	case fyne.KeyReturn, fyne.KeyEnter:
		if mod != 0 {
			return keyCommand{}, false
		}
		return keyCommand{kind: cmdStep, dir: selection.Forward, step: selection.Unit}, true
	case fyne.KeyInsert:
		dir := selection.Forward
		if mod&fyne.KeyModifierShift != 0 {
			dir = selection.Backward
		}
		return keyCommand{kind: cmdInsert, dir: dir, multi: mod&fyne.KeyModifierControl != 0}, true
	case fyne.KeyDelete:
		if mod != 0 {
			return keyCommand{}, false
		}
		return keyCommand{kind: cmdRemove}, true
	}
	return keyCommand{}, false
}

// apply runs c against nav and reports whether anything changed.
func (c keyCommand) apply(nav *selection.Navigator) (bool, error) {
	switch c.kind {
	case cmdStep:
		return nav.Step(c.dir, c.step), nil
	case cmdShift:
		before, _ := nav.Selected()
		if err := nav.Shift(c.dir, c.step); err != nil {
			return false, err
		}
		after, _ := nav.Selected()
		return before != after, nil
	case cmdInsert:
		_, err := nav.Insert(c.dir, c.multi)
		return err == nil, err
	case cmdRemove:
		_, err := nav.Remove()
		return err == nil, err
	}
	return false, nil
}

var (
	commandKeys = []fyne.KeyName{
		fyne.KeyLeft, fyne.KeyRight, fyne.KeyUp, fyne.KeyDown, fyne.KeyInsert,
	}
	commandModifiers = []fyne.KeyModifier{
		fyne.KeyModifierShift,
		fyne.KeyModifierControl,
		fyne.KeyModifierAlt,
		fyne.KeyModifierAlt | fyne.KeyModifierShift,
		fyne.KeyModifierControl | fyne.KeyModifierShift,
	}
)

// setupShortcuts binds list commands, undo/redo and the voice toggle to the window.
func (a *App) setupShortcuts() {
	c := a.window.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyF2 {
			a.toggleVoice()
			return
		}
		a.runKey(ev.Name, 0)
	})

	for _, key := range commandKeys {
		for _, mod := range commandModifiers {
			key, mod := key, mod
			if _, ok := resolveKey(key, mod); !ok {
				continue
			}
			c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) {
				a.runKey(key, mod)
			})
		}
	}

	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.undo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.redo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.openDialog()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		a.exportDialog()
	})
}

func (a *App) runKey(key fyne.KeyName, mod fyne.KeyModifier) {
	cmd, ok := resolveKey(key, mod)
	if !ok {
		return
	}
	a.runCommand(cmd)
}
