package presentation

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Panel edge lengths used when no bridge provides them.
const (
	DefaultThumbnailSize = 80
	DefaultResultSize    = 500
)

const (
	noResultText = "No mix created yet"
	staleText    = "Inputs changed since this mix was created. Create the mix again to update it."
)

// ResultPanel shows the last merged image.
type ResultPanel struct {
	preview   *ImagePanel
	infoLabel *widget.Label
	stale     *widget.Label
	content   fyne.CanvasObject
}

// NewResultPanel creates a result panel with the given preview edge length.
func NewResultPanel(edge int) *ResultPanel {
	if edge <= 0 {
		edge = DefaultResultSize
	}

	p := &ResultPanel{
		preview:   NewImagePanel(float32(edge), nil, nil),
		infoLabel: widget.NewLabel(noResultText),
		stale:     widget.NewLabelWithStyle(staleText, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	}
	p.stale.Importance = widget.WarningImportance
	p.stale.Wrapping = fyne.TextWrapWord
	p.stale.Hide()

	title := widget.NewLabelWithStyle("Result", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	header := container.NewHBox(widget.NewIcon(theme.ColorPaletteIcon()), title, p.infoLabel)

	p.content = container.NewVBox(header, p.stale, container.NewCenter(p.preview))
	return p
}

// Content returns the panel's canvas object.
func (p *ResultPanel) Content() fyne.CanvasObject {
	return p.content
}

// SetResult shows a new mix and clears the stale marker.
func (p *ResultPanel) SetResult(width, height int, preview image.Image) {
	p.preview.SetImage(preview)
	p.infoLabel.SetText(fmt.Sprintf("%d x %d", width, height))
	p.SetStale(false)
}

// SetStale shows or hides the out of date marker.
func (p *ResultPanel) SetStale(stale bool) {
	if stale {
		p.stale.Show()
	} else {
		p.stale.Hide()
	}
}

// IsStale reports whether the marker is visible.
func (p *ResultPanel) IsStale() bool {
	return p.stale.Visible()
}

// Image returns the shown preview or nil.
func (p *ResultPanel) Image() image.Image {
	return p.preview.Image()
}
