// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package keyboard adapts a raw-mode terminal into the byte-per-button
// state the NES controller port expects, for cmd/nesgo's RUN mode
// where no SDL/imgui window is available.
package keyboard

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/retrograde-labs/nesgo/input"
)

// key to controller bit mapping. Arrow keys are not read as single
// bytes by a raw terminal (they arrive as a three-byte escape
// sequence), so this binds the directions to WASD instead, alongside
// the usual emulator convention of J/K for the two face buttons.
var keymap = map[byte]input.Button{
	'w':  input.Up,
	's':  input.Down,
	'a':  input.Left,
	'd':  input.Right,
	'j':  input.B,
	'k':  input.A,
	'\r': input.Start,
	' ':  input.Select,
}

// Reader puts stdin into cbreak mode (unbuffered, no echo) and reports
// the controller state implied by whatever keys have arrived since the
// last Poll. A background goroutine does the actual blocking read so
// Poll itself never blocks the driver loop.
type Reader struct {
	f         *os.File
	canonical unix.Termios

	bytes chan byte
}

// NewReader switches stdin into cbreak mode and starts reading it.
// Call Close to restore the terminal and stop reading.
func NewReader() (*Reader, error) {
	f := os.Stdin

	var canonical unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &canonical); err != nil {
		return nil, err
	}

	raw := canonical
	termios.Cfmakecbreak(&raw)
	if err := termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &raw); err != nil {
		return nil, err
	}

	r := &Reader{f: f, canonical: canonical, bytes: make(chan byte, 16)}
	go r.readLoop()
	return r, nil
}

func (r *Reader) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := r.f.Read(buf)
		if err != nil {
			return
		}
		if n > 0 {
			select {
			case r.bytes <- buf[0]:
			default: // drop the keystroke rather than block; Poll will catch up
			}
		}
	}
}

// Close restores the terminal to its original (canonical) mode. The
// background read goroutine is left to exit on its own next time the
// now-canonical terminal delivers (or fails to deliver) a byte.
func (r *Reader) Close() error {
	return termios.Tcsetattr(r.f.Fd(), termios.TCIFLUSH, &r.canonical)
}

// Poll drains every key that has arrived since the last call and
// returns the combined controller byte they represent. Unrecognised
// keys are ignored. Because a plain terminal has no key-up events,
// only keys seen since the last Poll are considered held — callers
// wanting a button to read as "held" across several frames must keep
// resending the key (the common terminal-emulator idiom of auto-
// repeat on a held key supplies this for free).
func (r *Reader) Poll() uint8 {
	var state uint8
	for {
		select {
		case b := <-r.bytes:
			if btn, ok := keymap[b]; ok {
				state |= uint8(btn)
			}
		default:
			return state
		}
	}
}
