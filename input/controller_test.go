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

package input_test

import (
	"testing"

	"github.com/retrograde-labs/nesgo/input"
)

func TestController_ShiftSequence(t *testing.T) {
	c := input.NewController()
	c.SetState(uint8(input.A) | uint8(input.Right))

	c.Write(1)
	c.Write(0)

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		got := c.Read() & 1
		if got != w {
			t.Fatalf("read %d: got bit %d, want %d", i, got, w)
		}
	}
}

func TestController_StrobeHighAlwaysReadsA(t *testing.T) {
	c := input.NewController()
	c.SetState(uint8(input.A))
	c.Write(1)

	for i := 0; i < 3; i++ {
		if c.Read()&1 != 1 {
			t.Fatalf("expected strobe-high reads to keep returning A's live state")
		}
	}
}

func TestController_OpenBusHighNibble(t *testing.T) {
	c := input.NewController()
	c.Write(1)
	if c.Read()&0xF0 != 0x40 {
		t.Fatalf("expected open-bus high nibble $40")
	}
}
