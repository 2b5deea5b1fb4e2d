package component

type PickupKind string

const (
	PickupFood    PickupKind = "food"
	PickupTruffle PickupKind = "truffle"
)

// Pickup is a collectible that restores hunger. Truffles also score.
type Pickup struct {
	Kind  PickupKind
	Value float64
}

var PickupComponent = NewComponent[Pickup]()
