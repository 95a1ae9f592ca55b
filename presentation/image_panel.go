package presentation

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ImagePanel shows an image scaled to a fixed square and reports taps.
type ImagePanel struct {
	widget.BaseWidget
	image       *canvas.Image
	background  *canvas.Rectangle
	placeholder fyne.Resource
	edge        float32
	onTapped    func()
}

// NewImagePanel creates a panel with the given edge length. The placeholder
// resource is shown while no image is set; it may be nil.
func NewImagePanel(edge float32, placeholder fyne.Resource, onTapped func()) *ImagePanel {
	p := &ImagePanel{
		placeholder: placeholder,
		edge:        edge,
		onTapped:    onTapped,
	}

	p.image = canvas.NewImageFromResource(placeholder)
	p.image.FillMode = canvas.ImageFillContain
	p.image.ScaleMode = canvas.ImageScaleSmooth
	p.image.SetMinSize(fyne.NewSize(edge, edge))

	p.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))

	p.ExtendBaseWidget(p)
	return p
}

func (p *ImagePanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(p.background, p.image))
}

func (p *ImagePanel) Tapped(_ *fyne.PointEvent) {
	if p.onTapped != nil {
		p.onTapped()
	}
}

// SetImage replaces the shown image.
func (p *ImagePanel) SetImage(img image.Image) {
	if img == nil {
		p.Clear()
		return
	}
	p.image.Resource = nil
	p.image.Image = img
	p.image.Refresh()
}

// Clear goes back to the placeholder.
func (p *ImagePanel) Clear() {
	p.image.Image = nil
	p.image.Resource = p.placeholder
	p.image.Refresh()
}

// Image returns the shown image or nil.
func (p *ImagePanel) Image() image.Image {
	return p.image.Image
}

func (p *ImagePanel) MinSize() fyne.Size {
	return fyne.NewSize(p.edge, p.edge)
}
