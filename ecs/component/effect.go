package component

import "github.com/milk9111/shooter/common"

// Shockwave is an expanding ring drawn around Center for its TTL.
type Shockwave struct {
	Center    common.Vec3
	MaxRadius float64
}

var ShockwaveComponent = NewComponent[Shockwave]()

// Tracer is a shot line drawn for its TTL.
type Tracer struct {
	From common.Vec3
	To   common.Vec3
	Hit  bool
}

var TracerComponent = NewComponent[Tracer]()
