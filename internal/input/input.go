// Package input turns a raw terminal byte stream into per-frame
// pointer motion for the player paddle. Arrow keys and WASD move the
// pointer inside the table's local coordinate space; the host applies
// the projected position to the game.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its
// last press. Terminals auto-repeat slower than the frame rate, so a
// short hold window smooths motion.
const keyHoldDuration = 40 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state so
// simultaneous key combinations register.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and feeds the
// stream. The goroutine exits when the reader fails (e.g. the SSH
// session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
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

// ReadInput drains all available bytes from the stream without
// blocking, handling CSI escape sequences for the arrow keys.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', '\x03':
			s.state.quit = now
		case 'a', 'A', 'h', 'H':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case 'w', 'W', 'k', 'K':
			s.state.up = now
		case 's', 'S', 'j', 'J':
			s.state.down = now
		}
	}

	return Input{
		Quit:  now.Sub(s.state.quit) < keyHoldDuration,
		Left:  now.Sub(s.state.left) < keyHoldDuration,
		Right: now.Sub(s.state.right) < keyHoldDuration,
		Up:    now.Sub(s.state.up) < keyHoldDuration,
		Down:  now.Sub(s.state.down) < keyHoldDuration,
	}
}

// Pointer integrates per-frame key state into a position in table
// local space, clamped to the given bounds. It stands in for the
// projected touch/pointer coordinates a tracking layer would supply.
type Pointer struct {
	X, Y                   float64
	MinX, MaxX, MinY, MaxY float64
	Speed                  float64 // Units per second while a key is held
}

// Apply moves the pointer by the held directions over dt seconds.
func (p *Pointer) Apply(in Input, dt float64) {
	if in.Left {
		p.X -= p.Speed * dt
	}
	if in.Right {
		p.X += p.Speed * dt
	}
	if in.Up {
		p.Y += p.Speed * dt
	}
	if in.Down {
		p.Y -= p.Speed * dt
	}
	if p.X < p.MinX {
		p.X = p.MinX
	}
	if p.X > p.MaxX {
		p.X = p.MaxX
	}
	if p.Y < p.MinY {
		p.Y = p.MinY
	}
	if p.Y > p.MaxY {
		p.Y = p.MaxY
	}
}
