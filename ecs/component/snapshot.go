package component

// Snapshot is the per-tick read-only view of a fighter.
type Snapshot struct {
	Health           int
	Resource         int
	Posture          Posture
	CurrentAction    Action
	CanAct           bool
	Defending        bool
	DefenseDirection Direction
	Evading          bool
	EvasionDirection Direction
}
