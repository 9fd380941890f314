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

package bus_test

import (
	"testing"

	"github.com/retrograde-labs/nesgo/cartridge"
	"github.com/retrograde-labs/nesgo/console/bus"
)

func testCartridge(t *testing.T, flags6 byte) *cartridge.Cartridge {
	t.Helper()
	h := make([]byte, 16)
	h[0], h[1], h[2], h[3] = 'N', 'E', 'S', 0x1A
	h[4] = 1
	h[5] = 1
	h[6] = flags6
	data := append(h, make([]byte, 16*1024+8*1024)...)
	cart, err := cartridge.Load("t.nes", data)
	if err != nil {
		t.Fatalf("unexpected error building test cartridge: %v", err)
	}
	return cart
}

func TestPPUBus_PaletteAliasing(t *testing.T) {
	b := bus.NewPPUBus(testCartridge(t, 0x00))

	pairs := [][2]uint16{{0x3F10, 0x3F00}, {0x3F14, 0x3F04}, {0x3F18, 0x3F08}, {0x3F1C, 0x3F0C}}
	for _, p := range pairs {
		b.Write(p[0], 0x2A)
		if got := b.Read(p[1]); got != 0x2A {
			t.Errorf("write to %#04x not observable at %#04x: got %#02x", p[0], p[1], got)
		}
		b.Write(p[1], 0x15)
		if got := b.Read(p[0]); got != 0x15 {
			t.Errorf("write to %#04x not observable at %#04x: got %#02x", p[1], p[0], got)
		}
	}
}

func TestPPUBus_PaletteMaskedTo6Bits(t *testing.T) {
	b := bus.NewPPUBus(testCartridge(t, 0x00))
	b.Write(0x3F00, 0xFF)
	if got := b.Read(0x3F00); got != 0x3F {
		t.Errorf("expected palette write to mask to 6 bits, got %#02x", got)
	}
}

func TestPPUBus_HorizontalMirroring(t *testing.T) {
	b := bus.NewPPUBus(testCartridge(t, 0x00)) // flags6 bit0=0 -> horizontal

	b.Write(0x2000, 0x11)
	if got := b.Read(0x2400); got != 0x11 {
		t.Errorf("horizontal mirror: expected table 1 to alias table 0, got %#02x", got)
	}
	b.Write(0x2800, 0x22)
	if got := b.Read(0x2C00); got != 0x22 {
		t.Errorf("horizontal mirror: expected table 3 to alias table 2, got %#02x", got)
	}
}

func TestPPUBus_VerticalMirroring(t *testing.T) {
	b := bus.NewPPUBus(testCartridge(t, 0x01)) // flags6 bit0=1 -> vertical

	b.Write(0x2000, 0x33)
	if got := b.Read(0x2800); got != 0x33 {
		t.Errorf("vertical mirror: expected table 2 to alias table 0, got %#02x", got)
	}
	b.Write(0x2400, 0x44)
	if got := b.Read(0x2C00); got != 0x44 {
		t.Errorf("vertical mirror: expected table 3 to alias table 1, got %#02x", got)
	}
}
