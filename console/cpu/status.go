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

package cpu

import "strings"

// Status is the 6502 processor status register (P). Break and the
// unused bit are not real latches on the hardware: Break is
// synthesised when pushing the register onto the stack by BRK/PHP,
// and the unused bit always reads back as 1.
type Status struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// Reset sets the status register to its post-reset state: interrupts
// disabled, everything else clear.
func (s *Status) Reset() {
	*s = Status{InterruptDisable: true}
}

// Value packs the flags into the 8 bit form pushed onto the stack.
func (s Status) Value() uint8 {
	var v uint8
	if s.Sign {
		v |= 0x80
	}
	if s.Overflow {
		v |= 0x40
	}
	v |= 0x20 // unused bit always reads 1
	if s.Break {
		v |= 0x10
	}
	if s.DecimalMode {
		v |= 0x08
	}
	if s.InterruptDisable {
		v |= 0x04
	}
	if s.Zero {
		v |= 0x02
	}
	if s.Carry {
		v |= 0x01
	}
	return v
}

// Load unpacks an 8 bit value (e.g. pulled from the stack) into the
// flags.
func (s *Status) Load(v uint8) {
	s.Sign = v&0x80 != 0
	s.Overflow = v&0x40 != 0
	s.Break = v&0x10 != 0
	s.DecimalMode = v&0x08 != 0
	s.InterruptDisable = v&0x04 != 0
	s.Zero = v&0x02 != 0
	s.Carry = v&0x01 != 0
}

// setNZ sets the Zero and Sign flags from the given result byte.
func (s *Status) setNZ(v uint8) {
	s.Zero = v == 0
	s.Sign = v&0x80 != 0
}

func (s Status) String() string {
	var b strings.Builder
	flag := func(set bool, c byte) {
		if set {
			b.WriteByte(c)
		} else {
			b.WriteByte(c - 'A' + 'a')
		}
	}
	flag(s.Sign, 'N')
	flag(s.Overflow, 'V')
	b.WriteByte('-')
	flag(s.Break, 'B')
	flag(s.DecimalMode, 'D')
	flag(s.InterruptDisable, 'I')
	flag(s.Zero, 'Z')
	flag(s.Carry, 'C')
	return b.String()
}
