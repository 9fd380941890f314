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

import (
	"github.com/retrograde-labs/nesgo/cartridge"
	"github.com/retrograde-labs/nesgo/input"
)

// PPURegisters is the register port a CPUBus forwards $2000-$3FFF
// accesses to. Implemented by console/ppu.PPU.
type PPURegisters interface {
	ReadRegister(reg uint8) uint8
	WriteRegister(reg uint8, data uint8)
}

// CPUBus is the memory map as seen by the 6502: 2 KiB of internal RAM
// mirrored every $0800, the PPU register port, the controller port,
// the OAM DMA trigger, an APU/IO placeholder, and the cartridge.
type CPUBus struct {
	ram [0x0800]byte

	ppu         PPURegisters
	cart        *cartridge.Cartridge
	controller1 *input.Controller

	lastBus uint8

	// cycles reports the CPU's current cycle counter, used to compute
	// OAM DMA's parity-dependent stall length. addStall adds cycles to
	// the CPU's stall counter. Both are supplied by whoever owns the
	// CPU, so that CPUBus never holds a pointer back to it.
	cycles   func() uint64
	addStall func(int)
}

// NewCPUBus wires a CPUBus to its sibling components.
func NewCPUBus(ppu PPURegisters, cart *cartridge.Cartridge, controller1 *input.Controller, cycles func() uint64, addStall func(int)) *CPUBus {
	return &CPUBus{
		ppu:         ppu,
		cart:        cart,
		controller1: controller1,
		cycles:      cycles,
		addStall:    addStall,
	}
}

// Read services a CPU read from the given address.
func (b *CPUBus) Read(addr uint16) uint8 {
	var v uint8

	switch {
	case addr < 0x2000:
		v = b.ram[addr&0x07FF]

	case addr < 0x4000:
		v = b.ppu.ReadRegister(uint8(addr & 7))

	case addr == 0x4016:
		v = b.controller1.Read()

	case addr == 0x4017:
		v = 0x40

	case addr < 0x4020:
		// APU/IO placeholder: reads return the last value seen on the bus.
		v = b.lastBus

	case addr >= 0x4020:
		v = b.cart.CPURead(addr)

	default:
		v = b.lastBus
	}

	b.lastBus = v
	return v
}

// Write services a CPU write to the given address.
func (b *CPUBus) Write(addr uint16, data uint8) {
	b.lastBus = data

	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = data

	case addr < 0x4000:
		b.ppu.WriteRegister(uint8(addr&7), data)

	case addr == 0x4014:
		b.oamDMA(data)

	case addr == 0x4016:
		b.controller1.Write(data)

	case addr < 0x4020:
		// APU/IO placeholder: writes are otherwise ignored.

	case addr >= 0x4020:
		b.cart.CPUWrite(addr, data)
	}
}

// LastBus returns the open-bus approximation: the value of the most
// recent read or write.
func (b *CPUBus) LastBus() uint8 {
	return b.lastBus
}

// oamDMA implements the $4014 trigger: copy 256 bytes from CPU page
// data*256 into OAM, through the OAMDATA register so that the
// current-OAM-address wraparound and post-increment behave exactly as
// a sequence of 256 writes to $2004 would. The CPU stalls for 513 or
// 514 cycles depending on whether its cycle counter is even or odd at
// the moment of the trigger.
func (b *CPUBus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		data := b.Read(base + uint16(i))
		b.ppu.WriteRegister(4, data)
	}
	b.addStall(513 + int(b.cycles()&1))
}
