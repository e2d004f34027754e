package component

// Input stores per-frame input state for an entity. DashPressed is
// edge-triggered by the input system; Jump is level state, edge-detected by
// the jump state machine itself so buffering sees the raw hold.
type Input struct {
	MoveX       float64
	Jump        bool
	DashPressed bool
}

var InputComponent = NewComponent[Input]()

// PlayerTag marks the player-controlled entity.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
