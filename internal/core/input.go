package core

// Action represents a semantic input action, abstracted from physical key
// presses. Scenes work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move catcher/racer left, move cursor left
	ActionRight          // D, Right arrow - move catcher/racer right, move cursor right
	ActionUp             // W, Up arrow - move cursor up
	ActionDown           // S, Down arrow - move cursor down
	ActionSelect         // Enter, Space - confirm, select tile, dismiss overlay
	ActionBack           // Esc - back out of a screen
	ActionRestart        // R - restart after end screen
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionSelect:
		return "Select"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
