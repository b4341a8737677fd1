package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynelayout "fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/application"
	"github.com/piwi3910/packassist/internal/layout"
	"github.com/piwi3910/packassist/internal/project"
	"github.com/piwi3910/packassist/internal/selection"
	"github.com/piwi3910/packassist/internal/voice"
)

const voiceStopTimeout = 2 * time.Second

// App holds the window state and UI references. All fields are owned by
// the Fyne event loop; voice results are marshalled onto it with fyne.Do.
type App struct {
	window     fyne.Window
	core       *application.App
	dispatcher *application.Dispatcher
	voice      *application.Voice // nil when voice input is off
	logger     *zap.Logger

	statePath string
	state     project.AppState

	list          *widget.Table
	grid          *widget.Table
	shipmentEntry *widget.Entry
	weightEntry   *widget.Entry
	boxesLabel    *widget.Label
	sampleLabel   *widget.Label
	positionLabel *widget.Label
	statusLabel   *widget.Label
	voiceBtn      *widget.Button

	syncing     bool
	unsubscribe func()
}

// NewApp binds the window to the application core and opens the voice
// session when voice input is enabled.
func NewApp(window fyne.Window, core *application.App) *App {
	a := &App{
		window:     window,
		core:       core,
		dispatcher: application.NewDispatcher(core.Navigator(), core.Logger().Named("dispatch")),
		logger:     core.Logger().Named("ui"),
		statePath:  project.DefaultStatePath(),
	}

	state, err := project.LoadState(a.statePath)
	if err != nil {
		a.logger.Warn("failed to load app state", zap.Error(err))
	}
	a.state = state

	v, err := core.OpenVoice(voice.HandlerFunc(a.onVoiceResult))
	switch {
	case err == nil:
		a.voice = v
	case errors.Is(err, application.ErrVoiceDisabled):
	default:
		a.logger.Error("voice input unavailable", zap.Error(err))
	}

	window.SetCloseIntercept(func() {
		a.Shutdown()
		window.Close()
	})
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	var recentItems []*fyne.MenuItem
	for _, path := range a.state.RecentFiles {
		path := path
		recentItems = append(recentItems, fyne.NewMenuItem(filepath.Base(path), func() {
			a.openFile(path)
		}))
	}
	if len(recentItems) == 0 {
		none := fyne.NewMenuItem("No recent files", nil)
		none.Disabled = true
		recentItems = append(recentItems, none)
	}
	recent.ChildMenu = fyne.NewMenu("", recentItems...)

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Shipment List...", a.openDialog),
		recent,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Map...", a.exportDialog),
		fyne.NewMenuItem("Export Box Labels...", a.labelsDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Session", a.saveSession),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Insert Blank", func() { a.runCommand(keyCommand{kind: cmdInsert, dir: selection.Forward}) }),
		fyne.NewMenuItem("Insert Blank Row", func() { a.runCommand(keyCommand{kind: cmdInsert, dir: selection.Forward, multi: true}) }),
		fyne.NewMenuItem("Remove Sample", func() { a.runCommand(keyCommand{kind: cmdRemove}) }),
	)

	voiceMenu := fyne.NewMenu("Voice",
		fyne.NewMenuItem("Start / Pause Listening", a.toggleVoice),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard", a.showKeysDialog),
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, voiceMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PackAssist",
		"PackAssist - Shipment Packing Assistant\n\n"+
			"Lays samples out into boxes, tracks weighing\n"+
			"by keyboard or voice and prints box maps.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

func (a *App) showKeysDialog() {
	dialog.ShowInformation("Keyboard",
		"Arrows: previous / next sample\n"+
			"Shift+Arrows: one box row\n"+
			"Ctrl+Arrows: first / last sample\n"+
			"Alt+Arrows: move the selected sample\n"+
			"Enter: next sample\n"+
			"Insert: blank after (Shift: before, Ctrl: whole row)\n"+
			"Delete: remove sample\n"+
			"F2: start / pause listening",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.list = a.buildListView()
	a.grid = a.buildMapView()
	a.unsubscribe = a.core.Layout().Subscribe(layout.ListenerFunc(a.layoutChanged))

	a.shipmentEntry = widget.NewEntry()
	a.shipmentEntry.SetPlaceHolder("Shipment")
	a.shipmentEntry.SetText(a.core.Shipment())
	a.shipmentEntry.OnChanged = a.core.SetShipment

	a.weightEntry = widget.NewEntry()
	a.weightEntry.SetPlaceHolder("Weight, g")
	a.weightEntry.OnSubmitted = a.submitWeight

	a.boxesLabel = widget.NewLabel("")
	a.sampleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.positionLabel = widget.NewLabel("")
	a.statusLabel = widget.NewLabel("")
	a.voiceBtn = widget.NewButtonWithIcon("", theme.MediaRecordIcon(), a.toggleVoice)

	toolbar := container.NewHBox(
		widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), a.openDialog),
		widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), a.exportDialog),
		widget.NewButtonWithIcon("Labels", theme.DocumentPrintIcon(), a.labelsDialog),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("Insert", theme.ContentAddIcon(), func() {
			a.runCommand(keyCommand{kind: cmdInsert, dir: selection.Forward})
		}),
		widget.NewButtonWithIcon("Insert Row", theme.ListIcon(), func() {
			a.runCommand(keyCommand{kind: cmdInsert, dir: selection.Forward, multi: true})
		}),
		widget.NewButtonWithIcon("Remove", theme.ContentRemoveIcon(), func() {
			a.runCommand(keyCommand{kind: cmdRemove})
		}),
		widget.NewButtonWithIcon("", theme.ContentUndoIcon(), a.undo),
		widget.NewButtonWithIcon("", theme.ContentRedoIcon(), a.redo),
		fynelayout.NewSpacer(),
		widget.NewLabel("Shipment"),
		container.NewGridWrap(fyne.NewSize(90, a.shipmentEntry.MinSize().Height), a.shipmentEntry),
		a.voiceBtn,
	)

	info := container.NewHBox(
		a.boxesLabel,
		widget.NewSeparator(),
		a.sampleLabel,
		a.positionLabel,
		fynelayout.NewSpacer(),
		container.NewGridWrap(fyne.NewSize(120, a.weightEntry.MinSize().Height), a.weightEntry),
	)

	split := container.NewHSplit(a.list, a.grid)
	split.Offset = 0.45

	a.setupShortcuts()
	a.updateInfo()
	a.updateVoice()
	a.startVoice()

	return container.NewBorder(
		toolbar,
		container.NewVBox(widget.NewSeparator(), info, a.statusLabel),
		nil, nil,
		split,
	)
}

// Shutdown stops voice input and persists the session and app state.
func (a *App) Shutdown() {
	if a.voice != nil {
		ctx, cancel := context.WithTimeout(context.Background(), voiceStopTimeout)
		if err := a.voice.Close(ctx); err != nil {
			a.logger.Warn("failed to close voice input", zap.Error(err))
		}
		cancel()
		a.voice = nil
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.core.Autosave()
	a.saveState()
}

// ─── Status ────────────────────────────────────────────────

func (a *App) setStatus(msg string) {
	a.statusLabel.SetText(msg)
	a.logger.Debug("status", zap.String("message", msg))
}

func (a *App) updateInfo() {
	l := a.core.Layout()
	a.boxesLabel.SetText(fmt.Sprintf("Boxes: %d", l.BoxAmount()))

	index, ok := a.core.Navigator().Selected()
	if !ok {
		a.sampleLabel.SetText("")
		a.positionLabel.SetText("")
		return
	}
	info, _ := l.Describe(index)
	code := info.Code
	if code == "" {
		code = "(blank)"
	}
	a.sampleLabel.SetText(fmt.Sprintf("#%d %s", index+1, code))
	a.positionLabel.SetText(info.String())
}

// ─── Editing ───────────────────────────────────────────────

func (a *App) runCommand(cmd keyCommand) {
	changed, err := cmd.apply(a.core.Navigator())
	if err != nil {
		a.setStatus(err.Error())
		return
	}
	if changed {
		a.selectionChanged()
	}
}

func (a *App) submitWeight(text string) {
	if err := a.core.Navigator().SetWeightText(text, true); err != nil {
		a.setStatus(err.Error())
		return
	}
	a.weightEntry.SetText("")
	a.selectionChanged()
}

func (a *App) undo() {
	if !a.core.Navigator().Undo() {
		a.setStatus("Nothing to undo")
		return
	}
	a.selectionChanged()
}

func (a *App) redo() {
	if !a.core.Navigator().Redo() {
		a.setStatus("Nothing to redo")
		return
	}
	a.selectionChanged()
}

// ─── Voice ─────────────────────────────────────────────────

// onVoiceResult runs on the pipeline worker and hands the result to the UI goroutine.
func (a *App) onVoiceResult(r voice.Result) {
	fyne.Do(func() { a.applyVoice(r) })
}

func (a *App) applyVoice(r voice.Result) {
	out, err := a.dispatcher.Dispatch(r)
	if err != nil {
		a.setStatus(fmt.Sprintf("Heard %q: %v", r.Value, err))
		return
	}
	if out.Suspend && a.voice != nil {
		a.voice.Pipeline().Suspend()
		a.updateVoice()
	}
	if out.Reply != "" {
		a.setStatus(out.Reply)
	}
	if out.Changed {
		a.selectionChanged()
	}
}

func (a *App) startVoice() {
	if a.voice == nil {
		return
	}
	if err := a.voice.Pipeline().Start(); err != nil {
		a.setStatus(fmt.Sprintf("Voice input failed: %v", err))
	}
	a.updateVoice()
}

func (a *App) toggleVoice() {
	if a.voice == nil {
		a.setStatus("Voice input is disabled")
		return
	}
	p := a.voice.Pipeline()
	if p.State() == voice.StateStopped {
		a.startVoice()
		return
	}
	p.Toggle()
	a.updateVoice()
}

func (a *App) updateVoice() {
	if a.voice == nil {
		a.voiceBtn.SetText("Voice off")
		a.voiceBtn.Disable()
		return
	}
	switch a.voice.Pipeline().State() {
	case voice.StateListening:
		a.voiceBtn.SetText("Listening")
		a.voiceBtn.Importance = widget.HighImportance
	case voice.StateSuspended:
		a.voiceBtn.SetText("Paused")
		a.voiceBtn.Importance = widget.MediumImportance
	default:
		a.voiceBtn.SetText("Start voice")
		a.voiceBtn.Importance = widget.MediumImportance
	}
	a.voiceBtn.Refresh()
}

// ─── Files ─────────────────────────────────────────────────

func (a *App) dialogLocation() fyne.ListableURI {
	if a.state.LastDir == "" {
		return nil
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(a.state.LastDir))
	if err != nil {
		return nil
	}
	return lister
}

func (a *App) openDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.openFile(reader.URI().Path())
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".csv", ".txt"}))
	if loc := a.dialogLocation(); loc != nil {
		d.SetLocation(loc)
	}
	d.Show()
}

func (a *App) openFile(path string) {
	result, err := a.core.Open(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.shipmentEntry.SetText(a.core.Shipment())
	a.state.AddRecent(path)
	a.state.LastDir = filepath.Dir(path)
	a.saveState()
	a.SetupMenus()

	a.core.Navigator().Select(0)
	a.selectionChanged()

	l := a.core.Layout()
	msg := fmt.Sprintf("Opened %s: %d samples in %d boxes", filepath.Base(path), l.Len(), l.BoxAmount())
	if len(result.Warnings) > 0 {
		msg += fmt.Sprintf(" (%d warnings)", len(result.Warnings))
	}
	a.setStatus(msg)
}

func (a *App) exportDialog() {
	if a.core.Layout().Len() == 0 {
		dialog.ShowInformation("Nothing to export", "Open a shipment list first.", a.window)
		return
	}
	a.saveDialog(a.defaultName("map", ".xlsx"), []string{".xlsx", ".pdf"}, ".xlsx", a.core.Export)
}

func (a *App) labelsDialog() {
	if a.core.Layout().Len() == 0 {
		dialog.ShowInformation("Nothing to export", "Open a shipment list first.", a.window)
		return
	}
	a.saveDialog(a.defaultName("labels", ".pdf"), []string{".pdf"}, ".pdf", a.core.ExportLabels)
}

func (a *App) defaultName(kind, ext string) string {
	if s := a.core.Shipment(); s != "" {
		return fmt.Sprintf("shipment_%s_%s%s", s, kind, ext)
	}
	return "shipment_" + kind + ext
}

func (a *App) saveDialog(name string, exts []string, defaultExt string, write func(string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if filepath.Ext(path) == "" {
			path += defaultExt
		}
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.state.LastDir = filepath.Dir(path)
		a.saveState()
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter(exts))
	if loc := a.dialogLocation(); loc != nil {
		d.SetLocation(loc)
	}
	d.Show()
}

func (a *App) saveSession() {
	if err := a.core.SaveSession(); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setStatus("Session saved")
}

func (a *App) saveState() {
	if err := project.SaveState(a.statePath, a.state); err != nil {
		a.logger.Warn("failed to save app state", zap.Error(err))
	}
}

// RestoreSession loads the autosaved session and reports it in the status bar.
func (a *App) RestoreSession() {
	ok, err := a.core.RestoreSession()
	if err != nil {
		a.logger.Warn("session not restored", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	a.shipmentEntry.SetText(a.core.Shipment())
	src := "previous session"
	if a.core.Source() != "" {
		src = filepath.Base(a.core.Source())
	}
	a.setStatus(fmt.Sprintf("Restored %d samples from %s", a.core.Layout().Len(), src))
}
