package component

// Bird is the roaming hazard spawned by the bird effect. It flies freely,
// ignoring solids, and kills the player on overlap.
type Bird struct {
	Speed float64
	// Script names the tengo steering program under prefabs/scripts.
	Script string
}

var BirdComponent = NewComponent[Bird]()
