package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// TutorialTag marks hand-authored geometry of the opening chunks.
type TutorialTag struct{}

var TutorialTagComponent = NewComponent[TutorialTag]()
