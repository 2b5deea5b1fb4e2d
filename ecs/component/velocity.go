package component

type Velocity struct {
	X float64
	Y float64
}

func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

var VelocityComponent = NewComponent[Velocity]()
