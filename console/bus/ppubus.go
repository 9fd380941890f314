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

package bus

import "github.com/retrograde-labs/nesgo/cartridge"

// PPUBus is the memory map as seen by the PPU: CHR in $0000-$1FFF,
// mirrored nametable VRAM in $2000-$3EFF, and palette RAM (with its
// four-entry aliasing) in $3F00-$3FFF.
type PPUBus struct {
	cart      *cartridge.Cartridge
	nametable [0x0800]byte
	palette   [32]byte
}

// NewPPUBus wires a PPUBus to the cartridge that supplies CHR and the
// mirroring mode.
func NewPPUBus(cart *cartridge.Cartridge) *PPUBus {
	return &PPUBus{cart: cart}
}

// Read services a PPU read from the given address, already masked to
// $0000-$3FFF by the caller.
func (b *PPUBus) Read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return b.cart.PPURead(addr)
	case addr < 0x3F00:
		return b.nametable[b.nametableIndex(addr)]
	default:
		return b.palette[paletteIndex(addr)]
	}
}

// Write services a PPU write to the given address, already masked to
// $0000-$3FFF by the caller.
func (b *PPUBus) Write(addr uint16, data uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		b.cart.PPUWrite(addr, data)
	case addr < 0x3F00:
		b.nametable[b.nametableIndex(addr)] = data
	default:
		// palette entries are masked to 6 bits on write
		b.palette[paletteIndex(addr)] = data & 0x3F
	}
}

// nametableIndex maps a $2000-$3EFF nametable address down into the 2
// KiB of physical VRAM, according to the cartridge's mirroring mode.
func (b *PPUBus) nametableIndex(addr uint16) uint16 {
	offset := (addr - 0x2000) % 0x1000
	table := offset / 0x0400
	within := offset % 0x0400

	var physical uint16
	switch b.cart.Mirroring() {
	case cartridge.MirrorVertical:
		physical = table % 2
	case cartridge.MirrorFourScreen:
		// best-effort: linear into the 2 KiB VRAM, ignoring that a real
		// four-screen board would need extra VRAM of its own.
		return (table*0x0400 + within) % 0x0800
	default: // horizontal
		physical = table / 2
	}

	return physical*0x0400 + within
}

// paletteIndex applies the four-entry background/sprite aliasing:
// $3F10/$14/$18/$1C mirror $3F00/$04/$08/$0C.
func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i&0x13 == 0x10 {
		i &= ^uint16(0x10)
	}
	return i
}
