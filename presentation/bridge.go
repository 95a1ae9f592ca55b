// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"image"
	"log/slog"
	"sync"

	"channel-mixer-go/application"
	"channel-mixer-go/core/command"
	"channel-mixer-go/core/event"
	"channel-mixer-go/core/eventbus"
	"channel-mixer-go/core/state"
	"channel-mixer-go/domain/mixer"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
// Callbacks run on the event bus goroutine; UI updates inside them must go through fyne.Do.
type UIEventBridge struct {
	workbench *application.Workbench
	eventBus  eventbus.EventBus
	logger    *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	// Subscription management
	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
type UICallbacks struct {
	// Slot events
	OnImageLoaded     func(slot mixer.SlotIndex, name string, width, height int, preview image.Image)
	OnChannelAssigned func(slot mixer.SlotIndex, ch mixer.Channel)

	// Result events
	OnMixCompleted    func(width, height int, preview image.Image)
	OnExportCompleted func(path string, size int)

	// Workbench events
	OnOperationFailed func(operation string, err error)
	OnStateChanged    func(oldState, newState state.WorkbenchState)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Workbench *application.Workbench
	EventBus  eventbus.EventBus
	Logger    *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		workbench: cfg.Workbench,
		eventBus:  cfg.EventBus,
		logger:    cfg.Logger,
		callbacks: &UICallbacks{},
	}

	// Subscribe to events
	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

// LoadImage decodes a file into a slot.
func (b *UIEventBridge) LoadImage(slot mixer.SlotIndex, path string) error {
	return b.workbench.Dispatch(command.NewLoadImage(slot, path))
}

// AssignChannel sets the output channel of a slot.
func (b *UIEventBridge) AssignChannel(slot mixer.SlotIndex, ch mixer.Channel) error {
	return b.workbench.Dispatch(command.NewAssignChannel(slot, ch))
}

// Merge combines the three slots into a new result.
func (b *UIEventBridge) Merge() error {
	return b.workbench.Dispatch(&command.Merge{})
}

// Export writes the result as a size×size PNG.
func (b *UIEventBridge) Export(size int, path string) error {
	return b.workbench.Dispatch(command.NewExport(size, path))
}

// Query methods

// State returns the workbench state.
func (b *UIEventBridge) State() state.WorkbenchState {
	return b.workbench.State()
}

// HasResult reports whether a mix has been created.
func (b *UIEventBridge) HasResult() bool {
	return b.workbench.HasResult()
}

// IsStale reports whether the shown result predates the latest slot change.
func (b *UIEventBridge) IsStale() bool {
	return b.workbench.IsStale()
}

// Slot returns a copy of a slot.
func (b *UIEventBridge) Slot(i mixer.SlotIndex) (mixer.Slot, error) {
	return b.workbench.Slot(i)
}

// FirstEmptySlot returns the slot a dropped file should go to.
func (b *UIEventBridge) FirstEmptySlot() mixer.SlotIndex {
	return b.workbench.FirstEmptySlot()
}

// ExportSizes returns the offered export sizes.
func (b *UIEventBridge) ExportSizes() []int {
	return b.workbench.ExportSizes()
}

// DefaultExportSize returns the preselected export size.
func (b *UIEventBridge) DefaultExportSize() int {
	return b.workbench.DefaultExportSize()
}

// SlotPreviewSize returns the thumbnail edge length.
func (b *UIEventBridge) SlotPreviewSize() int {
	return b.workbench.SlotPreviewSize()
}

// ResultPreviewSize returns the result preview edge length.
func (b *UIEventBridge) ResultPreviewSize() int {
	return b.workbench.ResultPreviewSize()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.ImageLoaded:
		if callbacks.OnImageLoaded != nil {
			callbacks.OnImageLoaded(evt.Slot(), evt.Name, evt.Width, evt.Height, evt.Preview)
		}

	case *event.ChannelAssigned:
		if callbacks.OnChannelAssigned != nil {
			callbacks.OnChannelAssigned(evt.Slot(), evt.Channel)
		}

	case *event.MixCompleted:
		if callbacks.OnMixCompleted != nil {
			callbacks.OnMixCompleted(evt.Width, evt.Height, evt.Preview)
		}

	case *event.ExportCompleted:
		if callbacks.OnExportCompleted != nil {
			callbacks.OnExportCompleted(evt.Path, evt.Size)
		}

	case *event.OperationFailed:
		if callbacks.OnOperationFailed != nil {
			callbacks.OnOperationFailed(evt.Operation, evt.Error)
		}

	case *event.StateChanged:
		if callbacks.OnStateChanged != nil {
			callbacks.OnStateChanged(evt.OldState, evt.NewState)
		}
	}
}
