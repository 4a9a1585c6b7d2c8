package component

// PlayerTag marks the entity the enemies and the boss hunt.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
