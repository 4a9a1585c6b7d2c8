package sim

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// FrameSchema is the JSON schema of the frames the hub sends, for
// spectator client authors.
func FrameSchema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	return json.MarshalIndent(r.Reflect(&Frame{}), "", "  ")
}
