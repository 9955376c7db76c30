package input

import (
	"io"
	"time"
)

// DefaultHoldDuration is how long a key is considered held after its last byte.
// Terminals report no key-up events, so releases are synthesized once a key
// has been silent for longer than this.
const DefaultHoldDuration = 150 * time.Millisecond

// Stream delivers terminal input bytes via a channel and tracks when each
// logical key was last seen.
type Stream struct {
	ch       chan byte
	lastSeen [keyCount]time.Time
	hold     time.Duration
	closed   bool
	pending  []byte // incomplete escape sequence carried to the next poll
}

// Signal reports host-level requests found while polling.
type Signal struct {
	Interrupt bool // Ctrl-C: leave the program
	Closed    bool // input reader reached EOF
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader, hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	s := &Stream{
		ch:   make(chan byte, 128),
		hold: hold,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes (non-blocking), updates key timestamps and
// applies the resulting presses and releases to state.
func (s *Stream) Poll(now time.Time, state *State) Signal {
	var sig Signal
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	sig.Closed = s.closed

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+2 >= len(buf) {
				// Hold back a sequence split across reads.
				if !s.closed {
					s.pending = append(s.pending, buf[i:]...)
				}
				break
			}
			if buf[i+1] != '[' {
				continue
			}
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'C':
				s.lastSeen[KeyRight] = now
			case 'D':
				s.lastSeen[KeyLeft] = now
			}
			i += 2
			continue
		}

		if b == 0x03 {
			sig.Interrupt = true
			continue
		}
		if k, ok := keyForByte(b); ok {
			s.lastSeen[k] = now
		}
	}

	for k := Key(0); k < keyCount; k++ {
		if now.Sub(s.lastSeen[k]) < s.hold {
			state.Press(k)
		} else {
			state.Release(k)
		}
	}
	return sig
}

// Reset forgets all key timestamps so nothing stays held across screens.
func (s *Stream) Reset() {
	s.lastSeen = [keyCount]time.Time{}
}

// keyForByte maps a single input byte to a logical key.
func keyForByte(b byte) (Key, bool) {
	switch b {
	case 'a', 'A', 'j', 'J', 'h', 'H':
		return KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return KeyRight, true
	case ' ', 'k', 'K', 'w', 'W':
		return KeyFire, true
	case 'p':
		return KeyPause, true
	case 'P':
		return KeyPauseShifted, true
	case 'q':
		return KeyQuit, true
	}
	return 0, false
}
