package component

// Transform places an entity in world space. X/Y is the collider center with
// y pointing up; Z is draw order only.
type Transform struct {
	X      float64
	Y      float64
	Z      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
