package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionRotate
	ActionDrop
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause

	// ActionSlot1..ActionSlot9 are numeric selections (pet activities).
	ActionSlot1
	ActionSlot2
	ActionSlot3
	ActionSlot4
	ActionSlot5
	ActionSlot6
	ActionSlot7
	ActionSlot8
	ActionSlot9
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionRotate:  "Rotate",
	ActionDrop:    "Drop",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	if slot, ok := a.Slot(); ok {
		return "Slot" + string(rune('0'+slot))
	}
	return "Unknown"
}

// SlotAction returns the action for numeric slot n (1-9).
func SlotAction(n int) Action {
	if n < 1 || n > 9 {
		return ActionNone
	}
	return ActionSlot1 + Action(n-1)
}

// Slot returns the 1-based slot number for slot actions.
func (a Action) Slot() (int, bool) {
	if a < ActionSlot1 || a > ActionSlot9 {
		return 0, false
	}
	return int(a-ActionSlot1) + 1, true
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
