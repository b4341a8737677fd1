package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"github.com/piwi3910/packassist/internal/layout"
	"github.com/piwi3910/packassist/internal/model"
	"github.com/piwi3910/packassist/internal/selection"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		key  fyne.KeyName
		mod  fyne.KeyModifier
		want keyCommand
	}{
		{fyne.KeyRight, 0, keyCommand{kind: cmdStep, dir: selection.Forward, step: selection.Unit}},
		{fyne.KeyUp, 0, keyCommand{kind: cmdStep, dir: selection.Backward, step: selection.Unit}},
		{fyne.KeyDown, fyne.KeyModifierShift, keyCommand{kind: cmdStep, dir: selection.Forward, step: selection.BoxRow}},
		{fyne.KeyLeft, fyne.KeyModifierControl, keyCommand{kind: cmdStep, dir: selection.Backward, step: selection.Edge}},
		{fyne.KeyRight, fyne.KeyModifierAlt, keyCommand{kind: cmdShift, dir: selection.Forward, step: selection.Unit}},
		{fyne.KeyLeft, fyne.KeyModifierAlt | fyne.KeyModifierShift, keyCommand{kind: cmdShift, dir: selection.Backward, step: selection.BoxRow}},
		{fyne.KeyReturn, 0, keyCommand{kind: cmdStep, dir: selection.Forward, step: selection.Unit}},
		{fyne.KeyInsert, 0, keyCommand{kind: cmdInsert, dir: selection.Forward}},
		{fyne.KeyInsert, fyne.KeyModifierShift, keyCommand{kind: cmdInsert, dir: selection.Backward}},
		{fyne.KeyInsert, fyne.KeyModifierControl, keyCommand{kind: cmdInsert, dir: selection.Forward, multi: true}},
		{fyne.KeyInsert, fyne.KeyModifierControl | fyne.KeyModifierShift, keyCommand{kind: cmdInsert, dir: selection.Backward, multi: true}},
		{fyne.KeyDelete, 0, keyCommand{kind: cmdRemove}},
	}
	for _, tt := range tests {
		got, ok := resolveKey(tt.key, tt.mod)
		if !ok {
			t.Errorf("resolveKey(%s, %d) not bound", tt.key, tt.mod)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveKey(%s, %d) = %+v, want %+v", tt.key, tt.mod, got, tt.want)
		}
	}
}

func TestResolveKeyUnbound(t *testing.T) {
	for _, k := range []struct {
		key fyne.KeyName
		mod fyne.KeyModifier
	}{
		{fyne.KeyA, 0},
		{fyne.KeyDelete, fyne.KeyModifierShift},
		{fyne.KeyReturn, fyne.KeyModifierControl},
	} {
		if _, ok := resolveKey(k.key, k.mod); ok {
			t.Errorf("resolveKey(%s, %d) should be unbound", k.key, k.mod)
		}
	}
}

func newNavigator(t *testing.T, n int) (*layout.Layout, *selection.Navigator) {
	t.Helper()
	g, err := model.NewGeometry(3, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.New(g, model.DefaultColumns(), nil)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([]model.Sample, n)
	for i := range samples {
		samples[i] = model.NewSample(string(rune('A' + i)))
	}
	l.Replace(samples)
	return l, selection.NewNavigator(l, layout.NewHistory())
}

func TestKeyCommandApply(t *testing.T) {
	l, nav := newNavigator(t, 5)
	nav.Select(0)

	changed, err := keyCommand{kind: cmdStep, dir: selection.Forward, step: selection.BoxRow}.apply(nav)
	if err != nil || !changed {
		t.Fatalf("box-row step = %v, %v", changed, err)
	}
	if idx, _ := nav.Selected(); idx != 3 {
		t.Fatalf("expected index 3, got %d", idx)
	}

	changed, err = keyCommand{kind: cmdShift, dir: selection.Backward, step: selection.Unit}.apply(nav)
	if err != nil || !changed {
		t.Fatalf("shift = %v, %v", changed, err)
	}
	if s, _ := l.Sample(2); s.Code != "D" {
		t.Fatalf("expected D moved to 2, got %q", s.Code)
	}

	if _, err := (keyCommand{kind: cmdInsert, dir: selection.Forward, multi: true}).apply(nav); err != nil {
		t.Fatalf("insert returned error: %v", err)
	}
	if l.Len() != 8 {
		t.Fatalf("expected a row of 3 blanks inserted, got %d samples", l.Len())
	}

	if _, err := (keyCommand{kind: cmdRemove}).apply(nav); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if l.Len() != 7 {
		t.Fatalf("expected 7 samples after remove, got %d", l.Len())
	}
}

func TestKeyCommandApplyWithoutSelection(t *testing.T) {
	_, nav := newNavigator(t, 2)

	if _, err := (keyCommand{kind: cmdRemove}).apply(nav); err == nil {
		t.Fatal("remove without selection should fail")
	}
	if changed, _ := (keyCommand{kind: cmdStep, dir: selection.Backward, step: selection.Unit}).apply(nav); !changed {
		t.Fatal("step without selection should select the last sample")
	}
	if idx, _ := nav.Selected(); idx != 1 {
		t.Fatalf("expected last sample selected, got %d", idx)
	}
}
