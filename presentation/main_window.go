package presentation

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"channel-mixer-go/core/state"
	"channel-mixer-go/domain/mixer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const windowTitle = "RGB Channel Mixer"

// MainWindow is the main application window.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	// UI components
	slotRows    [mixer.NumChannels]*SlotRow
	resultPanel *ResultPanel
	mergeBtn    *widget.Button
	exportBtn   *widget.Button

	// Cleanup
	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
	Width  float32
	Height float32
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 900, 700
	}

	w := &MainWindow{
		window: cfg.App.NewWindow(windowTitle),
		bridge: cfg.Bridge,
		logger: cfg.Logger,
	}

	w.init(cfg.Width, cfg.Height)
	w.setupEventCallbacks()

	w.window.SetOnDropped(w.handleDropped)
	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init(width, height float32) {
	resultSize := DefaultResultSize
	if w.bridge != nil {
		resultSize = w.bridge.ResultPreviewSize()
	}

	rows := container.NewVBox()
	for i := range w.slotRows {
		w.slotRows[i] = NewSlotRow(&SlotRowConfig{
			Slot:   mixer.SlotIndex(i),
			Bridge: w.bridge,
			Window: w.window,
			Logger: w.logger,
		})
		rows.Add(w.slotRows[i].Content())
		rows.Add(widget.NewSeparator())
	}

	w.mergeBtn = widget.NewButtonWithIcon("Create Mix", theme.ViewRefreshIcon(), w.handleMerge)
	w.mergeBtn.Importance = widget.HighImportance
	w.exportBtn = widget.NewButtonWithIcon("Save Image", theme.DocumentSaveIcon(), w.handleExport)
	w.exportBtn.Disable()

	actions := container.NewHBox(layout.NewSpacer(), w.mergeBtn, w.exportBtn, layout.NewSpacer())

	w.resultPanel = NewResultPanel(resultSize)

	hint := widget.NewLabelWithStyle(
		"Pick three images, assign each a channel, then create the mix. Files can also be dropped on the window.",
		fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	hint.Wrapping = fyne.TextWrapWord

	content := container.NewVBox(hint, rows, actions, widget.NewSeparator(), w.resultPanel.Content())
	w.window.SetContent(container.NewVScroll(container.NewPadded(content)))
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnImageLoaded: func(slot mixer.SlotIndex, name string, width, height int, preview image.Image) {
			// UI update must run on main thread
			fyne.Do(func() {
				w.slotRows[slot].SetLoaded(name, preview)
			})
		},
		OnChannelAssigned: func(slot mixer.SlotIndex, ch mixer.Channel) {
			fyne.Do(func() {
				w.slotRows[slot].SetChannel(ch)
			})
		},
		OnMixCompleted: func(width, height int, preview image.Image) {
			fyne.Do(func() {
				w.resultPanel.SetResult(width, height, preview)
				w.exportBtn.Enable()
			})
		},
		OnExportCompleted: func(path string, size int) {
			fyne.Do(func() {
				dialog.ShowInformation("Image Saved",
					fmt.Sprintf("Saved %d x %d image to\n%s", size, size, path),
					w.window)
			})
		},
		OnOperationFailed: func(operation string, err error) {
			fyne.Do(func() {
				dialog.ShowError(err, w.window)
			})
		},
		OnStateChanged: func(oldState, newState state.WorkbenchState) {
			w.logger.Debug("Workbench state changed", "from", oldState, "to", newState)
			stale := w.bridge.IsStale()
			fyne.Do(func() {
				w.resultPanel.SetStale(stale)
			})
		},
	})
}

func (w *MainWindow) handleMerge() {
	if w.bridge == nil {
		return
	}
	// Failures reach the user through OnOperationFailed
	_ = w.bridge.Merge()
}

func (w *MainWindow) handleExport() {
	if w.bridge == nil {
		return
	}
	if !w.bridge.HasResult() {
		dialog.ShowError(mixer.ErrNoResult, w.window)
		return
	}

	NewExportDialog(w.window, w.bridge.ExportSizes(), w.bridge.DefaultExportSize(), func(size int, path string) {
		_ = w.bridge.Export(size, path)
	}).Show()
}

func (w *MainWindow) handleDropped(_ fyne.Position, uris []fyne.URI) {
	w.loadDropped(uris)
}

// loadDropped loads each supported file into the first empty slot.
func (w *MainWindow) loadDropped(uris []fyne.URI) {
	if w.bridge == nil {
		return
	}

	for _, u := range uris {
		if u.Scheme() != "file" || !mixer.IsSupportedFile(u.Path()) {
			w.logger.Debug("Ignoring dropped item", "uri", u.String())
			continue
		}
		_ = w.bridge.LoadImage(w.bridge.FirstEmptySlot(), u.Path())
	}
}

// Show displays the window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Window returns the underlying fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// Cleanup releases the event subscription.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Closing main window")
		if w.bridge != nil {
			w.bridge.Close()
		}
	})
}
