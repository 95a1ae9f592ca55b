// Package application provides the application layer that owns the mixer
// and turns UI commands into mixer operations and events.
package application

import (
	"fmt"
	"image"
	"log/slog"
	"slices"
	"sync"

	"channel-mixer-go/core/command"
	"channel-mixer-go/core/event"
	"channel-mixer-go/core/eventbus"
	"channel-mixer-go/core/state"
	"channel-mixer-go/domain/mixer"
)

// Preview edge lengths used when no configuration is given.
const (
	DefaultSlotPreviewSize   = 80
	DefaultResultPreviewSize = 500
)

// DefaultExportSizes are the square sizes offered for export.
var DefaultExportSizes = []int{512, 1024, 2048, 4096, 8192}

// Workbench owns the mixer and its state. Commands run synchronously on
// the caller's goroutine; listeners learn about outcomes through events.
type Workbench struct {
	mu    sync.Mutex
	mixer *mixer.Mixer
	state state.WorkbenchState

	// Dependencies
	eventBus eventbus.EventBus
	logger   *slog.Logger

	// Settings
	exportSizes       []int
	defaultExportSize int
	slotPreviewSize   int
	resultPreviewSize int
}

// WorkbenchConfig holds configuration for the Workbench.
type WorkbenchConfig struct {
	EventBus          eventbus.EventBus
	MixerOptions      *mixer.Options
	ExportSizes       []int
	DefaultExportSize int
	SlotPreviewSize   int
	ResultPreviewSize int
	Logger            *slog.Logger
}

// NewWorkbench creates a new workbench with an empty mixer.
func NewWorkbench(cfg *WorkbenchConfig) *Workbench {
	if cfg == nil {
		cfg = &WorkbenchConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	w := &Workbench{
		mixer:             mixer.New(cfg.MixerOptions),
		state:             state.StateEmpty,
		eventBus:          cfg.EventBus,
		logger:            cfg.Logger,
		exportSizes:       slices.Clone(cfg.ExportSizes),
		defaultExportSize: cfg.DefaultExportSize,
		slotPreviewSize:   cfg.SlotPreviewSize,
		resultPreviewSize: cfg.ResultPreviewSize,
	}

	if len(w.exportSizes) == 0 {
		w.exportSizes = slices.Clone(DefaultExportSizes)
	}
	if !slices.Contains(w.exportSizes, w.defaultExportSize) {
		w.defaultExportSize = w.exportSizes[0]
		if slices.Contains(w.exportSizes, 1024) {
			w.defaultExportSize = 1024
		}
	}
	if w.slotPreviewSize <= 0 {
		w.slotPreviewSize = DefaultSlotPreviewSize
	}
	if w.resultPreviewSize <= 0 {
		w.resultPreviewSize = DefaultResultPreviewSize
	}

	return w
}

// Dispatch executes a command. The returned error is also published as an
// OperationFailed event.
func (w *Workbench) Dispatch(cmd command.Command) error {
	w.logger.Debug("Dispatching command", "command", cmd.CommandName())

	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	switch cmd := cmd.(type) {
	case *command.LoadImage:
		err = w.handleLoadImage(cmd)
	case *command.AssignChannel:
		err = w.handleAssignChannel(cmd)
	case *command.Merge:
		err = w.handleMerge()
	case *command.Export:
		err = w.handleExport(cmd)
	default:
		err = fmt.Errorf("unknown command type: %T", cmd)
	}

	if err != nil {
		w.reportFailure(cmd.CommandName(), err)
	}
	return err
}

// Command handlers

func (w *Workbench) handleLoadImage(cmd *command.LoadImage) error {
	if err := w.mixer.Load(cmd.Slot(), cmd.Path); err != nil {
		return err
	}

	slot, _ := w.mixer.Slot(cmd.Slot())
	preview, err := w.mixer.SlotPreview(cmd.Slot(), w.slotPreviewSize)
	if err != nil {
		return err
	}

	w.logger.Info("Image loaded", "slot", int(cmd.Slot()), "path", cmd.Path, "size", slot.Size())
	w.publish(event.NewImageLoaded(cmd.Slot(), cmd.Path, slot.Size(), preview))
	w.setState(state.StateLoaded)
	return nil
}

func (w *Workbench) handleAssignChannel(cmd *command.AssignChannel) error {
	if err := w.mixer.AssignChannel(cmd.Slot(), cmd.Channel); err != nil {
		return err
	}

	w.logger.Debug("Channel assigned", "slot", int(cmd.Slot()), "channel", cmd.Channel.String())
	w.publish(event.NewChannelAssigned(cmd.Slot(), cmd.Channel))

	// The result no longer reflects the current assignment
	if w.state.IsMerged() {
		w.setState(state.StateLoaded)
	}
	return nil
}

func (w *Workbench) handleMerge() error {
	result, err := w.mixer.Merge()
	if err != nil {
		return err
	}

	preview, err := w.mixer.Preview(w.resultPreviewSize)
	if err != nil {
		return err
	}

	size := result.Bounds().Size()
	w.logger.Info("Mix created", "width", size.X, "height", size.Y)
	w.publish(event.NewMixCompleted(size, preview))
	w.setState(state.StateMerged)
	return nil
}

func (w *Workbench) handleExport(cmd *command.Export) error {
	path, err := w.mixer.ExportFile(cmd.Size, cmd.Path)
	if err != nil {
		return err
	}

	w.logger.Info("Mix exported", "path", path, "size", cmd.Size)
	w.publish(event.NewExportCompleted(path, cmd.Size))

	// Exporting a stale result leaves the workbench in Loaded
	if w.state.IsMerged() {
		w.setState(state.StateExported)
	}
	return nil
}

func (w *Workbench) reportFailure(operation string, err error) {
	if mixer.IsValidation(err) {
		w.logger.Warn("Operation rejected", "operation", operation, "error", err)
	} else {
		w.logger.Error("Operation failed", "operation", operation, "error", err)
	}
	w.publish(event.NewOperationFailed(operation, err))
}

func (w *Workbench) setState(newState state.WorkbenchState) {
	oldState := w.state
	if !oldState.CanTransitionTo(newState) {
		w.logger.Warn("Ignoring state change", "error", state.NewTransitionError(oldState, newState))
		return
	}
	w.state = newState
	if oldState != newState {
		w.publish(event.NewStateChanged(oldState, newState))
	}
}

func (w *Workbench) publish(e event.Event) {
	if w.eventBus != nil {
		w.eventBus.Publish(e)
	}
}

// Query methods

// State returns the current workbench state.
func (w *Workbench) State() state.WorkbenchState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// HasResult reports whether a merge has succeeded.
func (w *Workbench) HasResult() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mixer.HasResult()
}

// IsStale reports whether the result predates the latest slot change.
func (w *Workbench) IsStale() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mixer.HasResult() && !w.state.IsMerged()
}

// Result returns the last merged image or nil.
func (w *Workbench) Result() image.Image {
	w.mu.Lock()
	defer w.mu.Unlock()
	if r := w.mixer.Result(); r != nil {
		return r
	}
	return nil
}

// Slot returns a copy of a slot.
func (w *Workbench) Slot(i mixer.SlotIndex) (mixer.Slot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mixer.Slot(i)
}

// SlotName returns the path the slot was loaded from, or empty.
func (w *Workbench) SlotName(i mixer.SlotIndex) string {
	s, err := w.Slot(i)
	if err != nil {
		return ""
	}
	return s.Name
}

// Channel returns the channel assigned to a slot.
func (w *Workbench) Channel(i mixer.SlotIndex) (mixer.Channel, error) {
	s, err := w.Slot(i)
	if err != nil {
		return 0, err
	}
	return s.Channel, nil
}

// FirstEmptySlot returns the lowest slot without an image, or 0 when all are full.
func (w *Workbench) FirstEmptySlot() mixer.SlotIndex {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := 0; i < mixer.NumChannels; i++ {
		if s, _ := w.mixer.Slot(mixer.SlotIndex(i)); !s.IsLoaded() {
			return mixer.SlotIndex(i)
		}
	}
	return 0
}

// ExportSizes returns the square sizes offered for export.
func (w *Workbench) ExportSizes() []int {
	return slices.Clone(w.exportSizes)
}

// DefaultExportSize returns the preselected export size.
func (w *Workbench) DefaultExportSize() int {
	return w.defaultExportSize
}

// SlotPreviewSize returns the edge length of slot thumbnails.
func (w *Workbench) SlotPreviewSize() int {
	return w.slotPreviewSize
}

// ResultPreviewSize returns the edge length of the result preview.
func (w *Workbench) ResultPreviewSize() int {
	return w.resultPreviewSize
}
