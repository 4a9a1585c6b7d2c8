package component

// Animation records the last animator trigger fired on an entity so
// renderers and transcripts can show it.
type Animation struct {
	Current string
	Since   float64
	Fired   int
}

var AnimationComponent = NewComponent[Animation]()
