// Package input tracks held keys and turns terminal bytes into key events.
package input

// Key is a logical key identifier.
type Key int

const (
	KeyLeft         Key = iota // Move left
	KeyRight                   // Move right
	KeyFire                    // Fire / start
	KeyPause                   // 'p'
	KeyPauseShifted            // 'P'
	KeyQuit                    // 'q'
	keyCount
)

var keyNames = [keyCount]string{
	KeyLeft:         "left",
	KeyRight:        "right",
	KeyFire:         "fire",
	KeyPause:        "p",
	KeyPauseShifted: "P",
	KeyQuit:         "q",
}

// String returns the key name.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Direction is a horizontal movement multiplier.
type Direction int

const (
	DirectionLeft    Direction = -1
	DirectionStopped Direction = 0
	DirectionRight   Direction = 1
)

// State is the set of currently held keys.
// The zero value has no keys held.
type State struct {
	held [keyCount]bool
}

// Press marks k as held.
func (s *State) Press(k Key) {
	if k >= 0 && k < keyCount {
		s.held[k] = true
	}
}

// Release marks k as released.
func (s *State) Release(k Key) {
	if k >= 0 && k < keyCount {
		s.held[k] = false
	}
}

// ReleaseAll clears every held key.
func (s *State) ReleaseAll() {
	s.held = [keyCount]bool{}
}

// IsHeld reports whether k is held.
func (s *State) IsHeld(k Key) bool {
	return k >= 0 && k < keyCount && s.held[k]
}

// Direction returns the movement direction. Holding both left and right
// cancels out.
func (s *State) Direction() Direction {
	left, right := s.IsHeld(KeyLeft), s.IsHeld(KeyRight)
	switch {
	case left && right:
		return DirectionStopped
	case left:
		return DirectionLeft
	case right:
		return DirectionRight
	}
	return DirectionStopped
}

// IsFiring reports whether fire is held.
func (s *State) IsFiring() bool {
	return s.IsHeld(KeyFire)
}

// IsPausing reports whether either pause key is held.
func (s *State) IsPausing() bool {
	return s.IsHeld(KeyPause) || s.IsHeld(KeyPauseShifted)
}

// IsQuitting reports whether quit is held.
func (s *State) IsQuitting() bool {
	return s.IsHeld(KeyQuit)
}
