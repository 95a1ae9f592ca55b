package state

import "testing"

func TestWorkbenchState_String(t *testing.T) {
	tests := []struct {
		state    WorkbenchState
		expected string
	}{
		{StateEmpty, "Empty"},
		{StateLoaded, "Loaded"},
		{StateMerged, "Merged"},
		{StateExported, "Exported"},
		{WorkbenchState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("WorkbenchState.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWorkbenchState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     WorkbenchState
		to       WorkbenchState
		expected bool
	}{
		{"Empty -> Loaded", StateEmpty, StateLoaded, true},
		{"Empty -> Merged (invalid)", StateEmpty, StateMerged, false},
		{"Empty -> Exported (invalid)", StateEmpty, StateExported, false},

		{"Loaded -> Loaded", StateLoaded, StateLoaded, true},
		{"Loaded -> Merged", StateLoaded, StateMerged, true},
		{"Loaded -> Exported (invalid)", StateLoaded, StateExported, false},
		{"Loaded -> Empty (invalid)", StateLoaded, StateEmpty, false},

		{"Merged -> Loaded", StateMerged, StateLoaded, true},
		{"Merged -> Merged", StateMerged, StateMerged, true},
		{"Merged -> Exported", StateMerged, StateExported, true},

		{"Exported -> Loaded", StateExported, StateLoaded, true},
		{"Exported -> Merged", StateExported, StateMerged, true},
		{"Exported -> Exported", StateExported, StateExported, true},
		{"Exported -> Empty (invalid)", StateExported, StateEmpty, false},

		{"Unknown -> Loaded (invalid)", WorkbenchState(42), StateLoaded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWorkbenchState_CanMerge(t *testing.T) {
	tests := []struct {
		state    WorkbenchState
		expected bool
	}{
		{StateEmpty, false},
		{StateLoaded, true},
		{StateMerged, true},
		{StateExported, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.CanMerge(); got != tt.expected {
				t.Errorf("CanMerge() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWorkbenchState_IsMerged(t *testing.T) {
	tests := []struct {
		state    WorkbenchState
		expected bool
	}{
		{StateEmpty, false},
		{StateLoaded, false},
		{StateMerged, true},
		{StateExported, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsMerged(); got != tt.expected {
				t.Errorf("IsMerged() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidTransitions(t *testing.T) {
	if got := StateEmpty.ValidTransitions(); len(got) != 1 || got[0] != StateLoaded {
		t.Errorf("Empty.ValidTransitions() = %v, want [Loaded]", got)
	}
	if got := WorkbenchState(99).ValidTransitions(); len(got) != 0 {
		t.Errorf("Unknown.ValidTransitions() = %v, want empty", got)
	}
}

func TestTransitionError(t *testing.T) {
	err := NewTransitionError(StateEmpty, StateExported)
	expected := "invalid state transition from Empty to Exported"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
