package mixer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// patternGray builds a w×h gray image whose value at (x, y) is f(x, y).
func patternGray(w, h int, f func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: f(x, y)})
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func loadAll(t *testing.T, m *Mixer, imgs ...image.Image) {
	t.Helper()
	for i, img := range imgs {
		if err := m.LoadImage(SlotIndex(i), img, "mem"); err != nil {
			t.Fatalf("LoadImage(%d) error = %v", i, err)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestMerge_PermutationsPreserveGrayValues(t *testing.T) {
	const w, h = 7, 5
	sources := []*image.Gray{
		patternGray(w, h, func(x, y int) uint8 { return uint8(x*30 + y) }),
		patternGray(w, h, func(x, y int) uint8 { return uint8(255 - y*40) }),
		patternGray(w, h, func(x, y int) uint8 { return uint8((x * y * 13) % 256) }),
	}

	perms := [][NumChannels]Channel{
		{Red, Green, Blue},
		{Red, Blue, Green},
		{Green, Red, Blue},
		{Green, Blue, Red},
		{Blue, Red, Green},
		{Blue, Green, Red},
	}

	for _, perm := range perms {
		name := perm[0].String() + perm[1].String() + perm[2].String()
		t.Run(name, func(t *testing.T) {
			m := New(nil)
			loadAll(t, m, sources[0], sources[1], sources[2])
			for i, c := range perm {
				if err := m.AssignChannel(SlotIndex(i), c); err != nil {
					t.Fatalf("AssignChannel() error = %v", err)
				}
			}

			out, err := m.Merge()
			if err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
			if out.Bounds().Dx() != w || out.Bounds().Dy() != h {
				t.Fatalf("result size = %v, want %dx%d", out.Bounds().Size(), w, h)
			}

			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					px := out.RGBAAt(x, y)
					got := [NumChannels]uint8{px.R, px.G, px.B}
					for slot, c := range perm {
						want := sources[slot].GrayAt(x, y).Y
						if got[c] != want {
							t.Fatalf("pixel (%d,%d) channel %s = %d, want %d", x, y, c, got[c], want)
						}
					}
					if px.A != 0xff {
						t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, px.A)
					}
				}
			}
		})
	}
}

func TestMerge_MissingImage(t *testing.T) {
	img := patternGray(2, 2, func(x, y int) uint8 { return 10 })

	tests := []struct {
		name   string
		loaded []SlotIndex
	}{
		{"none loaded", nil},
		{"only first", []SlotIndex{0}},
		{"first and second", []SlotIndex{0, 1}},
		{"second and third", []SlotIndex{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			for _, s := range tt.loaded {
				if err := m.LoadImage(s, img, "mem"); err != nil {
					t.Fatalf("LoadImage() error = %v", err)
				}
			}

			_, err := m.Merge()
			if !errors.Is(err, ErrMissingImage) {
				t.Errorf("Merge() error = %v, want ErrMissingImage", err)
			}
			if !IsValidation(err) {
				t.Errorf("Merge() error should be a ValidationError, got %T", err)
			}
			if m.HasResult() {
				t.Error("failed merge must not produce a result")
			}
		})
	}
}

func TestMerge_DuplicateChannel(t *testing.T) {
	img := patternGray(2, 2, func(x, y int) uint8 { return 10 })

	tests := []struct {
		name     string
		channels [NumChannels]Channel
	}{
		{"all red", [NumChannels]Channel{Red, Red, Red}},
		{"two green", [NumChannels]Channel{Green, Green, Blue}},
		{"red twice apart", [NumChannels]Channel{Red, Blue, Red}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil)
			loadAll(t, m, img, img, img)
			for i, c := range tt.channels {
				m.AssignChannel(SlotIndex(i), c)
			}

			_, err := m.Merge()
			if !errors.Is(err, ErrDuplicateChannel) {
				t.Errorf("Merge() error = %v, want ErrDuplicateChannel", err)
			}
			if m.HasResult() {
				t.Error("failed merge must not produce a result")
			}
		})
	}
}

func TestMerge_FailureKeepsPreviousResult(t *testing.T) {
	img := patternGray(3, 3, func(x, y int) uint8 { return 42 })
	m := New(nil)
	loadAll(t, m, img, img, img)

	first, err := m.Merge()
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	m.AssignChannel(2, Red)
	if _, err := m.Merge(); err == nil {
		t.Fatal("expected duplicate channel error")
	}

	if m.Result() != first {
		t.Error("failed merge replaced the previous result")
	}
}

func TestMerge_ResizesToFirstSlot(t *testing.T) {
	m := New(nil)
	loadAll(t, m,
		solid(4, 3, color.NRGBA{R: 200, G: 200, B: 200, A: 255}),
		solid(16, 12, color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		solid(5, 9, color.NRGBA{R: 30, G: 30, B: 30, A: 255}),
	)

	out, err := m.Merge()
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if got := out.Bounds().Size(); got != image.Pt(4, 3) {
		t.Fatalf("result size = %v, want (4,3)", got)
	}

	px := out.RGBAAt(2, 1)
	if px.R != 200 || absDiff(px.G, 100) > 1 || absDiff(px.B, 30) > 1 {
		t.Errorf("pixel = %+v, want about {200 100 30}", px)
	}
}

func TestMerge_ColorSourcesUseLuma(t *testing.T) {
	m := New(nil)
	loadAll(t, m,
		solid(2, 2, color.NRGBA{R: 255, A: 255}),
		solid(2, 2, color.NRGBA{G: 255, A: 255}),
		solid(2, 2, color.NRGBA{B: 255, A: 255}),
	)

	out, err := m.Merge()
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	px := out.RGBAAt(0, 0)
	if px.R != 76 || px.G != 150 || px.B != 29 {
		t.Errorf("pixel = %+v, want {76 150 29}", px)
	}
}

func TestReload_DoesNotChangePreviousResult(t *testing.T) {
	m := New(nil)
	a := patternGray(3, 3, func(x, y int) uint8 { return 10 })
	b := patternGray(3, 3, func(x, y int) uint8 { return 20 })
	c := patternGray(3, 3, func(x, y int) uint8 { return 30 })
	loadAll(t, m, a, b, c)

	result, err := m.Merge()
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	m.LoadImage(0, patternGray(6, 6, func(x, y int) uint8 { return 250 }), "other")

	if m.Result() != result {
		t.Fatal("reload replaced the result")
	}
	if px := m.Result().RGBAAt(1, 1); px.R != 10 {
		t.Errorf("R after reload = %d, want 10", px.R)
	}

	remerged, err := m.Merge()
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if remerged.Bounds().Dx() != 6 || remerged.RGBAAt(1, 1).R != 250 {
		t.Error("re-merge did not pick up the reloaded image")
	}
}

func TestExport_BeforeMerge(t *testing.T) {
	m := New(nil)
	var buf bytes.Buffer

	err := m.Export(512, &buf)
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("Export() error = %v, want ErrNoResult", err)
	}
	if buf.Len() != 0 {
		t.Error("Export() wrote data without a result")
	}

	if _, err := m.ExportFile(512, filepath.Join(t.TempDir(), "out.png")); !errors.Is(err, ErrNoResult) {
		t.Errorf("ExportFile() error = %v, want ErrNoResult", err)
	}
}

func TestExport_ProducesSquareOfRequestedSize(t *testing.T) {
	m := New(nil)
	img := patternGray(10, 6, func(x, y int) uint8 { return uint8(x * 20) })
	loadAll(t, m, img, img, img)
	if _, err := m.Merge(); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	for _, size := range []int{1, 8, 33, 64} {
		var buf bytes.Buffer
		if err := m.Export(size, &buf); err != nil {
			t.Fatalf("Export(%d) error = %v", size, err)
		}
		decoded, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("png.Decode() error = %v", err)
		}
		if got := decoded.Bounds().Size(); got != image.Pt(size, size) {
			t.Errorf("Export(%d) size = %v", size, got)
		}
	}
}

func TestExport_InvalidSize(t *testing.T) {
	m := New(nil)
	img := patternGray(2, 2, func(x, y int) uint8 { return 1 })
	loadAll(t, m, img, img, img)
	m.Merge()

	if err := m.Export(0, &bytes.Buffer{}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Export(0) error = %v, want ErrInvalidSize", err)
	}
}

func TestRender_LetterboxesNonSquare(t *testing.T) {
	m := New(nil)
	img := solid(4, 2, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	loadAll(t, m, img, img, img)
	if _, err := m.Merge(); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	out, err := m.Render(8)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if c := out.NRGBAAt(4, 0); c != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("letterbox pixel = %+v, want white", c)
	}
	if c := out.NRGBAAt(4, 4); c.R > 2 || c.G > 2 || c.B > 2 {
		t.Errorf("content pixel = %+v, want black", c)
	}
}

func TestRender_CustomBackground(t *testing.T) {
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	m := New(&Options{Background: bg})
	img := solid(2, 6, color.NRGBA{A: 255})
	loadAll(t, m, img, img, img)
	m.Merge()

	out, err := m.Render(12)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c := out.NRGBAAt(0, 6); c != bg {
		t.Errorf("left border = %+v, want %+v", c, bg)
	}
}

func TestExportFile_AppendsExtension(t *testing.T) {
	m := New(nil)
	img := patternGray(3, 3, func(x, y int) uint8 { return 99 })
	loadAll(t, m, img, img, img)
	m.Merge()

	dir := t.TempDir()
	tests := []struct {
		in   string
		want string
	}{
		{filepath.Join(dir, "mix"), filepath.Join(dir, "mix.png")},
		{filepath.Join(dir, "mix.PNG"), filepath.Join(dir, "mix.PNG")},
		{filepath.Join(dir, "mix.jpg"), filepath.Join(dir, "mix.jpg.png")},
	}

	for _, tt := range tests {
		got, err := m.ExportFile(16, tt.in)
		if err != nil {
			t.Fatalf("ExportFile(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExportFile(%q) path = %q, want %q", tt.in, got, tt.want)
		}
		if _, err := os.Stat(got); err != nil {
			t.Errorf("exported file missing: %v", err)
		}
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.png")
	writePNG(t, path, solid(5, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))

	m := New(nil)
	if err := m.Load(1, path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	slot, _ := m.Slot(1)
	if !slot.IsLoaded() || slot.Name != path {
		t.Errorf("slot = %+v, want loaded from %s", slot, path)
	}
	if slot.Size() != image.Pt(5, 4) {
		t.Errorf("slot size = %v, want (5,4)", slot.Size())
	}
}

func TestLoad_CorruptFileLeavesSlotUnchanged(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.png")
	writePNG(t, good, solid(2, 2, color.NRGBA{A: 255}))
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	m := New(nil)
	if err := m.Load(0, good); err != nil {
		t.Fatalf("Load(good) error = %v", err)
	}

	err := m.Load(0, bad)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("Load(bad) error = %v, want *DecodeError", err)
	}
	if de.Path != bad {
		t.Errorf("DecodeError.Path = %q, want %q", de.Path, bad)
	}

	slot, _ := m.Slot(0)
	if slot.Name != good {
		t.Errorf("slot name = %q, want %q", slot.Name, good)
	}

	if err := m.Load(0, filepath.Join(dir, "missing.png")); !errors.As(err, &de) {
		t.Errorf("Load(missing) error = %v, want *DecodeError", err)
	}
}

func TestInvalidSlot(t *testing.T) {
	m := New(nil)
	img := patternGray(1, 1, func(x, y int) uint8 { return 0 })

	for _, s := range []SlotIndex{-1, 3, 10} {
		if err := m.LoadImage(s, img, "x"); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("LoadImage(%d) error = %v, want ErrInvalidSlot", s, err)
		}
		if err := m.AssignChannel(s, Red); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("AssignChannel(%d) error = %v, want ErrInvalidSlot", s, err)
		}
		if _, err := m.Slot(s); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Slot(%d) error = %v, want ErrInvalidSlot", s, err)
		}
	}

	if err := m.AssignChannel(0, Channel(7)); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("AssignChannel(invalid) error = %v, want ErrInvalidChannel", err)
	}
}

func TestNew_DefaultAssignments(t *testing.T) {
	m := New(nil)
	for i, want := range Channels {
		slot, _ := m.Slot(SlotIndex(i))
		if slot.Channel != want {
			t.Errorf("slot %d channel = %s, want %s", i, slot.Channel, want)
		}
	}
}

func TestPreview(t *testing.T) {
	m := New(nil)
	if _, err := m.Preview(50); !errors.Is(err, ErrNoResult) {
		t.Errorf("Preview() before merge error = %v, want ErrNoResult", err)
	}
	if _, err := m.SlotPreview(0, 50); !errors.Is(err, ErrMissingImage) {
		t.Errorf("SlotPreview() on empty slot error = %v, want ErrMissingImage", err)
	}

	img := solid(2, 2, color.NRGBA{A: 255})
	loadAll(t, m, img, img, img)
	m.Merge()

	preview, err := m.Preview(8)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if preview.Bounds().Size() != image.Pt(8, 8) {
		t.Errorf("preview size = %v, want (8,8)", preview.Bounds().Size())
	}
	// Thumbnails never enlarge, so the 2×2 result sits in the middle.
	if c := preview.NRGBAAt(0, 0); c.R != 255 {
		t.Errorf("preview corner = %+v, want white", c)
	}
	if c := preview.NRGBAAt(3, 3); c.R != 0 {
		t.Errorf("preview center = %+v, want black", c)
	}

	thumb, err := m.SlotPreview(2, 8)
	if err != nil {
		t.Fatalf("SlotPreview() error = %v", err)
	}
	if thumb.Bounds().Size() != image.Pt(8, 8) {
		t.Errorf("slot preview size = %v, want (8,8)", thumb.Bounds().Size())
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}
