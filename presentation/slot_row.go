package presentation

import (
	"image"
	"log/slog"
	"path/filepath"

	"channel-mixer-go/domain/mixer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const noImageText = "No image selected"

// SlotRow shows one input slot: thumbnail, file path and channel selector.
type SlotRow struct {
	slot   mixer.SlotIndex
	bridge *UIEventBridge
	window fyne.Window
	logger *slog.Logger

	preview       *ImagePanel
	pathLabel     *widget.Label
	channelSelect *widget.Select
	content       fyne.CanvasObject

	// Set while the selector is changed from code, not by the user
	updating bool
}

// SlotRowConfig holds configuration for SlotRow.
type SlotRowConfig struct {
	Slot   mixer.SlotIndex
	Bridge *UIEventBridge
	Window fyne.Window
	Logger *slog.Logger
}

// NewSlotRow creates the row for one slot.
func NewSlotRow(cfg *SlotRowConfig) *SlotRow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := &SlotRow{
		slot:   cfg.Slot,
		bridge: cfg.Bridge,
		window: cfg.Window,
		logger: cfg.Logger.With("slot", int(cfg.Slot)),
	}

	edge := float32(DefaultThumbnailSize)
	if r.bridge != nil {
		edge = float32(r.bridge.SlotPreviewSize())
	}

	r.preview = NewImagePanel(edge, theme.FileImageIcon(), r.showOpenDialog)
	r.pathLabel = widget.NewLabel(noImageText)
	r.pathLabel.Truncation = fyne.TextTruncateEllipsis

	r.channelSelect = widget.NewSelect(mixer.ChannelLabels(), r.onChannelSelected)

	if r.bridge != nil {
		if s, err := r.bridge.Slot(r.slot); err == nil {
			r.SetChannel(s.Channel)
		}
	}

	title := widget.NewLabelWithStyle(r.slot.String(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	browseBtn := widget.NewButtonWithIcon("Browse...", theme.FolderOpenIcon(), r.showOpenDialog)

	r.content = container.NewBorder(nil, nil,
		r.preview,
		container.NewVBox(widget.NewLabel("Channel"), r.channelSelect),
		container.NewVBox(title, r.pathLabel, container.NewHBox(browseBtn)),
	)

	return r
}

// Content returns the row's canvas object.
func (r *SlotRow) Content() fyne.CanvasObject {
	return r.content
}

// SetLoaded shows a newly loaded image.
func (r *SlotRow) SetLoaded(path string, preview image.Image) {
	r.pathLabel.SetText(path)
	r.preview.SetImage(preview)
}

// SetChannel updates the selector without dispatching a command.
func (r *SlotRow) SetChannel(ch mixer.Channel) {
	r.updating = true
	r.channelSelect.SetSelected(ch.String())
	r.updating = false
}

// Path returns the shown file path, or empty when none is loaded.
func (r *SlotRow) Path() string {
	if r.pathLabel.Text == noImageText {
		return ""
	}
	return r.pathLabel.Text
}

func (r *SlotRow) onChannelSelected(label string) {
	if r.updating || r.bridge == nil {
		return
	}

	ch, err := mixer.ParseChannel(label)
	if err != nil {
		r.logger.Warn("Unknown channel selected", "label", label)
		return
	}
	// Failures reach the user through OnOperationFailed
	_ = r.bridge.AssignChannel(r.slot, ch)
}

func (r *SlotRow) showOpenDialog() {
	if r.window == nil {
		return
	}

	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, r.window)
			return
		}
		if reader == nil {
			return // cancelled
		}
		path := reader.URI().Path()
		reader.Close()
		r.load(path)
	}, r.window)

	d.SetFilter(storage.NewExtensionFileFilter(mixer.SupportedExtensions))
	if prev := r.Path(); prev != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(prev))); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

func (r *SlotRow) load(path string) {
	if r.bridge == nil {
		return
	}
	r.logger.Debug("Loading image", "path", path)
	// Failures reach the user through OnOperationFailed
	_ = r.bridge.LoadImage(r.slot, path)
}
