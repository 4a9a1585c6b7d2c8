package behavior

import "sync"

// SerializedTarget guards a DamageTarget shared by actors that tick on
// different goroutines. Every mutation and query goes through one lock.
type SerializedTarget struct {
	mu     sync.Mutex
	target DamageTarget
}

func NewSerializedTarget(t DamageTarget) *SerializedTarget {
	return &SerializedTarget{target: t}
}

func (s *SerializedTarget) Hit(damage int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target.Hit(damage)
}

func (s *SerializedTarget) HealthBoost(value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target.HealthBoost(value)
}

func (s *SerializedTarget) AmmoBoost(value int, weapon WeaponType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target.AmmoBoost(value, weapon)
}

func (s *SerializedTarget) IsHealthFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target.IsHealthFull()
}

func (s *SerializedTarget) IsWeaponFull(weapon WeaponType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target.IsWeaponFull(weapon)
}
