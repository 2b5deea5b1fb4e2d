package component

// BodyFlags is the closed set of physics roles a body can take.
type BodyFlags uint8

const (
	// FlagSolid marks immovable geometry the resolver collides against.
	FlagSolid BodyFlags = 1 << iota
	// FlagMovable marks bodies that integrate velocity and get resolved.
	FlagMovable
	// FlagGrounded is owned by the movement system.
	FlagGrounded
)

func (f BodyFlags) Has(flag BodyFlags) bool {
	return f&flag == flag
}

func (f *BodyFlags) Set(flag BodyFlags, on bool) {
	if on {
		*f |= flag
		return
	}
	*f &^= flag
}

type Body struct {
	Flags BodyFlags
}

func (b *Body) Solid() bool    { return b != nil && b.Flags.Has(FlagSolid) }
func (b *Body) Movable() bool  { return b != nil && b.Flags.Has(FlagMovable) }
func (b *Body) Grounded() bool { return b != nil && b.Flags.Has(FlagGrounded) }

var BodyComponent = NewComponent[Body]()
