package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Notes     int    `json:"notes"`
	Completed int    `json:"completed"`
	Expired   int    `json:"expired"`
	EditIndex int    `json:"edit_index"`
	Location  string `json:"location"`
	SlotType  string `json:"slot_type"`
	Slot      any    `json:"slot,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	state := ServiceState{
		Notes:     len(s.notes),
		EditIndex: s.editIndex,
		Location:  s.loc.String(),
		SlotType:  "slot",
	}
	for _, n := range s.notes {
		if n.Completed {
			state.Completed++
		}
		if n.IsExpired(now, s.loc) {
			state.Expired++
		}
	}

	if comp, ok := s.slot.(introspection.Component); ok {
		state.SlotType = comp.ComponentType()
	}
	if in, ok := s.slot.(introspection.Introspectable); ok {
		state.Slot = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
