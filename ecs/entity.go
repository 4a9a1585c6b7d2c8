package ecs

import (
	"fmt"
	"strconv"
	"strings"
)

// Entity packs a slot index in the low half and the slot's generation in
// the high half, so a handle to a recycled slot no longer resolves.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID           { return entityID(uint32(e)) }
func (e Entity) generation() generation { return generation(uint32(uint64(e) >> entityIDBits)) }

// Valid reports whether e names a slot. It says nothing about liveness.
func (e Entity) Valid() bool { return e.id() > 0 }

// String renders e as "<slot>v<generation>".
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// MarshalText writes the String form so frames and transcripts stay
// readable.
func (e Entity) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Entity) UnmarshalText(text []byte) error {
	slot, gen, ok := strings.Cut(string(text), "v")
	if !ok {
		return fmt.Errorf("ecs: malformed entity %q", text)
	}
	id, err := strconv.ParseUint(slot, 10, 32)
	if err != nil {
		return fmt.Errorf("ecs: malformed entity %q: %w", text, err)
	}
	g, err := strconv.ParseUint(gen, 10, 32)
	if err != nil {
		return fmt.Errorf("ecs: malformed entity %q: %w", text, err)
	}
	*e = makeEntity(entityID(id), generation(g))
	return nil
}
