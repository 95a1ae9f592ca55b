package mixer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
)

// Options controls how results are rendered for preview and export.
type Options struct {
	// Background fills the letterbox area around non-square results.
	Background color.Color
	// Compression is the PNG compression level used by Export.
	Compression Compression
}

// DefaultOptions returns a white background and default compression.
func DefaultOptions() *Options {
	return &Options{
		Background:  color.White,
		Compression: CompressionDefault,
	}
}

// Mixer holds three slots and the result of the last merge.
// It is not safe for concurrent use.
type Mixer struct {
	slots  [NumChannels]Slot
	result *image.RGBA
	opts   Options
}

// New creates a mixer with slots assigned R, G, B in order.
func New(opts *Options) *Mixer {
	if opts == nil {
		opts = DefaultOptions()
	}
	m := &Mixer{opts: *opts}
	if m.opts.Background == nil {
		m.opts.Background = color.White
	}
	if m.opts.Compression == "" {
		m.opts.Compression = CompressionDefault
	}
	for i := range m.slots {
		m.slots[i].Channel = Channels[i]
	}
	return m
}

// Load decodes the file at path into slot. On failure the slot keeps its
// previous image.
func (m *Mixer) Load(slot SlotIndex, path string) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	img, err := decodeFile(path)
	if err != nil {
		return err
	}
	m.put(slot, img, path)
	return nil
}

// LoadImage stores an already decoded image in slot.
func (m *Mixer) LoadImage(slot SlotIndex, img image.Image, name string) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if img == nil || img.Bounds().Empty() {
		return &DecodeError{Path: name, Err: fmt.Errorf("image has no pixels")}
	}
	m.put(slot, img, name)
	return nil
}

func (m *Mixer) put(slot SlotIndex, img image.Image, name string) {
	m.slots[slot].Image = img
	m.slots[slot].Name = name
}

// AssignChannel labels slot with c. Uniqueness is checked by Merge.
func (m *Mixer) AssignChannel(slot SlotIndex, c Channel) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if !c.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, int(c))
	}
	m.slots[slot].Channel = c
	return nil
}

// Slot returns a copy of the slot at i.
func (m *Mixer) Slot(i SlotIndex) (Slot, error) {
	if err := i.Validate(); err != nil {
		return Slot{}, err
	}
	return m.slots[i], nil
}

// Validate checks the merge preconditions without merging.
func (m *Mixer) Validate() (Assignment, error) {
	var missing []string
	for i := range m.slots {
		if !m.slots[i].IsLoaded() {
			missing = append(missing, SlotIndex(i).String())
		}
	}
	if len(missing) > 0 {
		return Assignment{}, newValidationError(ErrMissingImage, "missing: %s", strings.Join(missing, ", "))
	}
	return buildAssignment(&m.slots)
}

// Merge resizes every slot to slot 0's dimensions, converts each to
// grayscale and composes them into one RGB image following the channel
// assignment. The result replaces any previous one. Nothing changes when
// validation fails.
func (m *Mixer) Merge() (*image.RGBA, error) {
	assign, err := m.Validate()
	if err != nil {
		return nil, err
	}

	size := m.slots[0].Size()
	var planes [NumChannels]*image.Gray
	for _, c := range Channels {
		src := m.slots[assign.Slot(c)].Image
		planes[c] = Grayscale(resizeTo(src, size))
	}

	m.result = compose(planes, size)
	return m.result, nil
}

// compose interleaves three same-size gray planes into an opaque RGBA image.
func compose(planes [NumChannels]*image.Gray, size image.Point) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	r, g, b := planes[Red], planes[Green], planes[Blue]
	for y := 0; y < size.Y; y++ {
		row := out.Pix[y*out.Stride:]
		rrow, grow, brow := r.Pix[y*r.Stride:], g.Pix[y*g.Stride:], b.Pix[y*b.Stride:]
		for x := 0; x < size.X; x++ {
			p := row[x*4 : x*4+4]
			p[0] = rrow[x]
			p[1] = grow[x]
			p[2] = brow[x]
			p[3] = 0xff
		}
	}
	return out
}

// Result returns the last merged image, or nil before the first merge.
func (m *Mixer) Result() *image.RGBA {
	return m.result
}

// HasResult reports whether a merge has succeeded.
func (m *Mixer) HasResult() bool {
	return m.result != nil
}

// Render letterboxes the result into a size×size square. This is what
// Export encodes.
func (m *Mixer) Render(size int) (*image.NRGBA, error) {
	if m.result == nil {
		return nil, &ValidationError{Err: ErrNoResult}
	}
	if size <= 0 {
		return nil, newValidationError(ErrInvalidSize, "got %d", size)
	}
	return Letterbox(m.result, size, m.opts.Background), nil
}

// Export writes the result scaled into a size×size PNG.
func (m *Mixer) Export(size int, w io.Writer) error {
	img, err := m.Render(size)
	if err != nil {
		return err
	}
	return encodePNG(w, img, m.opts.Compression)
}

// ExportFile is Export to a file. ".png" is appended to path if missing;
// the final path is returned. No file is created when validation fails.
func (m *Mixer) ExportFile(size int, path string) (string, error) {
	img, err := m.Render(size)
	if err != nil {
		return "", err
	}

	path = EnsurePNGExtension(path)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if err := encodePNG(f, img, m.opts.Compression); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return path, nil
}

// Preview returns a size×size thumbnail of the result.
func (m *Mixer) Preview(size int) (*image.NRGBA, error) {
	if m.result == nil {
		return nil, &ValidationError{Err: ErrNoResult}
	}
	return Thumbnail(m.result, size, m.opts.Background), nil
}

// SlotPreview returns a size×size thumbnail of the slot's source image.
func (m *Mixer) SlotPreview(slot SlotIndex, size int) (*image.NRGBA, error) {
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	img := m.slots[slot].Image
	if img == nil {
		return nil, newValidationError(ErrMissingImage, "%s is empty", slot)
	}
	return Thumbnail(img, size, m.opts.Background), nil
}
