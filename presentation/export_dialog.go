package presentation

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"channel-mixer-go/domain/mixer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const defaultExportName = "mix.png"

// ExportDialog asks for an export size, then for a destination file.
type ExportDialog struct {
	window      fyne.Window
	sizes       []int
	defaultSize int
	onChosen    func(size int, path string)

	sizeGroup *widget.RadioGroup
}

// NewExportDialog creates the dialog. onChosen receives the size and a path
// that already ends in .png.
func NewExportDialog(window fyne.Window, sizes []int, defaultSize int, onChosen func(size int, path string)) *ExportDialog {
	d := &ExportDialog{
		window:      window,
		sizes:       sizes,
		defaultSize: defaultSize,
		onChosen:    onChosen,
	}

	d.sizeGroup = widget.NewRadioGroup(sizeOptions(sizes), nil)
	d.sizeGroup.Required = true
	d.sizeGroup.SetSelected(sizeLabel(defaultSize))
	return d
}

// Show opens the size selection step.
func (d *ExportDialog) Show() {
	content := widget.NewForm(widget.NewFormItem("Size", d.sizeGroup))
	dialog.ShowCustomConfirm("Save Image", "Next", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		size, err := parseSizeLabel(d.sizeGroup.Selected)
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		d.showSaveDialog(size)
	}, d.window)
}

// SelectedSize returns the size currently chosen in the radio group.
func (d *ExportDialog) SelectedSize() (int, error) {
	return parseSizeLabel(d.sizeGroup.Selected)
}

func (d *ExportDialog) showSaveDialog(size int) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		path := writer.URI().Path()
		writer.Close()

		d.onChosen(size, exportPath(path))
	}, d.window)

	save.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	save.SetFileName(defaultExportName)
	save.Show()
}

// exportPath returns the path the PNG will be written to. The save dialog
// creates the chosen file; when .png has to be appended that empty file is
// removed again.
func exportPath(chosen string) string {
	path := mixer.EnsurePNGExtension(chosen)
	if path != chosen {
		if info, err := os.Stat(chosen); err == nil && info.Size() == 0 {
			os.Remove(chosen)
		}
	}
	return path
}

func sizeLabel(size int) string {
	return fmt.Sprintf("%d x %d", size, size)
}

func sizeOptions(sizes []int) []string {
	options := make([]string, len(sizes))
	for i, s := range sizes {
		options[i] = sizeLabel(s)
	}
	return options
}

func parseSizeLabel(label string) (int, error) {
	first, _, ok := strings.Cut(label, " x ")
	if !ok {
		return 0, fmt.Errorf("no export size selected")
	}
	size, err := strconv.Atoi(first)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("invalid export size %q", label)
	}
	return size, nil
}
