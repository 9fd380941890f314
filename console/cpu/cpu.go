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

import "github.com/retrograde-labs/nesgo/logger"

// Memory is the bus a CPU executes against. Implemented by
// console/bus.CPUBus.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// CPU is the 6502-derived processor at the heart of the console: the
// A/X/Y/SP/PC registers, the status flags, and the instruction
// dispatch loop.
type CPU struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	SP uint8

	Status Status

	mem Memory

	cycles uint64
	stall  int

	nmiPending bool
	irqLevel   bool
}

// NewCPU constructs a CPU wired to the given bus. Call Reset before
// stepping it, as with real hardware coming out of power-on.
func NewCPU(mem Memory) *CPU {
	return &CPU{mem: mem}
}

// Reset reinitialises the CPU to its post-reset state and loads PC
// from the reset vector at $FFFC/$FFFD. The reset sequence itself
// costs 7 cycles on real hardware.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.Status.Reset()
	c.PC = c.read16(0xFFFC)
	c.cycles = 7
	c.stall = 0
	c.nmiPending = false
	c.irqLevel = false
}

// Cycles returns the CPU's running cycle count. Exposed as a closure
// to console/bus.CPUBus so that OAM DMA can compute its parity-
// dependent stall length without CPUBus holding a pointer back to the
// CPU.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// AddStall adds n cycles to the CPU's stall counter. Exposed as a
// closure to console/bus.CPUBus for the same reason as Cycles.
func (c *CPU) AddStall(n int) {
	c.stall += n
}

// SetNMI raises a pending non-maskable interrupt, serviced at the
// start of the next Step.
func (c *CPU) SetNMI() {
	c.nmiPending = true
}

// SetIRQ sets the level of the maskable interrupt line. The NES's APU
// frame counter and mapper IRQ sources hold this line high until they
// are acknowledged.
func (c *CPU) SetIRQ(level bool) {
	c.irqLevel = level
}

func (c *CPU) read(addr uint16) uint8 {
	return c.mem.Read(addr)
}

func (c *CPU) write(addr uint16, v uint8) {
	c.mem.Write(addr, v)
}

func (c *CPU) read16(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// read16WrapBug reproduces the JMP ($xxFF) indirect addressing bug:
// the high byte is fetched from $xx00 of the same page rather than
// the first byte of the next page.
func (c *CPU) read16WrapBug(addr uint16) uint16 {
	lo := c.read(addr)
	hi := c.read((addr & 0xFF00) | ((addr + 1) & 0x00FF))
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push(v uint8) {
	c.write(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull() uint8 {
	c.SP++
	return c.read(0x0100 | uint16(c.SP))
}

func (c *CPU) fetch() uint8 {
	v := c.read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.read16(c.PC)
	c.PC += 2
	return v
}

// doInterrupt pushes PC and status and jumps to the given vector. It
// costs 7 cycles, identical for NMI, IRQ, and BRK.
func (c *CPU) doInterrupt(vector uint16, isBRK bool) int {
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.Status.Break = isBRK
	c.push(c.Status.Value())
	c.Status.InterruptDisable = true
	c.PC = c.read16(vector)
	return 7
}

// branch implements a relative-addressing conditional branch: 2
// cycles if not taken, plus 1 if taken, plus another 1 if the branch
// crosses a page boundary.
func (c *CPU) branch(cond bool) int {
	rel := int8(c.fetch())
	if !cond {
		return 2
	}
	old := c.PC
	c.PC = uint16(int32(c.PC) + int32(rel))
	if old&0xFF00 != c.PC&0xFF00 {
		return 4
	}
	return 3
}

// Addressing modes. Each returns the effective address and, where
// relevant, whether indexing crossed a page boundary.

func (c *CPU) addrImmediate() uint16 {
	addr := c.PC
	c.PC++
	return addr
}

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	return uint16(c.fetch() + c.X)
}

func (c *CPU) addrZeroPageY() uint16 {
	return uint16(c.fetch() + c.Y)
}

func (c *CPU) addrAbsolute() uint16 {
	return c.fetch16()
}

func (c *CPU) addrAbsoluteX() (uint16, bool) {
	base := c.fetch16()
	addr := base + uint16(c.X)
	return addr, base&0xFF00 != addr&0xFF00
}

func (c *CPU) addrAbsoluteY() (uint16, bool) {
	base := c.fetch16()
	addr := base + uint16(c.Y)
	return addr, base&0xFF00 != addr&0xFF00
}

func (c *CPU) addrIndexedIndirect() uint16 {
	zp := c.fetch() + c.X
	lo := c.read(uint16(zp))
	hi := c.read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) addrIndirectIndexed() (uint16, uint16, bool) {
	zp := c.fetch()
	lo := c.read(uint16(zp))
	hi := c.read(uint16(zp + 1))
	base := uint16(lo) | uint16(hi)<<8
	addr := base + uint16(c.Y)
	return addr, base, base&0xFF00 != addr&0xFF00
}

// Core operations shared between the accumulator and memory-operand
// forms of several instructions.

func (c *CPU) adc(m uint8) {
	carry := uint16(0)
	if c.Status.Carry {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	res := uint8(sum)
	c.Status.Carry = sum > 0xFF
	c.Status.Overflow = (c.A^res)&(m^res)&0x80 != 0
	c.A = res
	c.Status.setNZ(c.A)
}

func (c *CPU) sbc(m uint8) {
	c.adc(^m)
}

func (c *CPU) cmp(r, m uint8) {
	diff := uint16(r) - uint16(m)
	c.Status.Carry = r >= m
	c.Status.setNZ(uint8(diff))
}

func (c *CPU) asl(v uint8) uint8 {
	c.Status.Carry = v&0x80 != 0
	v <<= 1
	c.Status.setNZ(v)
	return v
}

func (c *CPU) lsr(v uint8) uint8 {
	c.Status.Carry = v&0x01 != 0
	v >>= 1
	c.Status.setNZ(v)
	return v
}

func (c *CPU) rol(v uint8) uint8 {
	var cin uint8
	if c.Status.Carry {
		cin = 1
	}
	c.Status.Carry = v&0x80 != 0
	v = (v << 1) | cin
	c.Status.setNZ(v)
	return v
}

func (c *CPU) ror(v uint8) uint8 {
	var cin uint8
	if c.Status.Carry {
		cin = 0x80
	}
	c.Status.Carry = v&0x01 != 0
	v = (v >> 1) | cin
	c.Status.setNZ(v)
	return v
}

func (c *CPU) anc(imm uint8) {
	c.A &= imm
	c.Status.setNZ(c.A)
	c.Status.Carry = c.A&0x80 != 0
}

func (c *CPU) alr(imm uint8) {
	c.A &= imm
	c.A = c.lsr(c.A)
}

// arr is an approximation good enough for the ROMs that rely on it;
// the exact V/C derivation varies across real 2A03 silicon revisions.
func (c *CPU) arr(imm uint8) {
	c.A &= imm
	c.A = c.ror(c.A)
	b5 := c.A >> 5 & 1
	b6 := c.A >> 6 & 1
	c.Status.Carry = b6 != 0
	c.Status.Overflow = b5^b6 != 0
}

func (c *CPU) sbx(imm uint8) {
	t := c.A & c.X
	diff := uint16(t) - uint16(imm)
	c.X = uint8(diff)
	c.Status.Carry = t >= imm
	c.Status.setNZ(c.X)
}

// Step executes one instruction (or one stall cycle, or one interrupt
// sequence) and returns the number of cycles it took.
func (c *CPU) Step() int {
	if c.stall > 0 {
		c.stall--
		c.cycles++
		return 1
	}

	if c.nmiPending {
		c.nmiPending = false
		n := c.doInterrupt(0xFFFA, false)
		c.cycles += uint64(n)
		return n
	}
	if c.irqLevel && !c.Status.InterruptDisable {
		n := c.doInterrupt(0xFFFE, false)
		c.cycles += uint64(n)
		return n
	}

	cycles := c.execute()
	c.cycles += uint64(cycles)
	return cycles
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// execute decodes and runs a single opcode, returning its cycle cost.
func (c *CPU) execute() int {
	op := c.fetch()

	switch op {
	// ADC
	case 0x69:
		c.adc(c.read(c.addrImmediate()))
		return 2
	case 0x65:
		c.adc(c.read(c.addrZeroPage()))
		return 3
	case 0x75:
		c.adc(c.read(c.addrZeroPageX()))
		return 4
	case 0x6D:
		c.adc(c.read(c.addrAbsolute()))
		return 4
	case 0x7D:
		a, cross := c.addrAbsoluteX()
		c.adc(c.read(a))
		return 4 + b2i(cross)
	case 0x79:
		a, cross := c.addrAbsoluteY()
		c.adc(c.read(a))
		return 4 + b2i(cross)
	case 0x61:
		c.adc(c.read(c.addrIndexedIndirect()))
		return 6
	case 0x71:
		a, _, cross := c.addrIndirectIndexed()
		c.adc(c.read(a))
		return 5 + b2i(cross)

	// SBC
	case 0xE9, 0xEB:
		c.sbc(c.read(c.addrImmediate()))
		return 2
	case 0xE5:
		c.sbc(c.read(c.addrZeroPage()))
		return 3
	case 0xF5:
		c.sbc(c.read(c.addrZeroPageX()))
		return 4
	case 0xED:
		c.sbc(c.read(c.addrAbsolute()))
		return 4
	case 0xFD:
		a, cross := c.addrAbsoluteX()
		c.sbc(c.read(a))
		return 4 + b2i(cross)
	case 0xF9:
		a, cross := c.addrAbsoluteY()
		c.sbc(c.read(a))
		return 4 + b2i(cross)
	case 0xE1:
		c.sbc(c.read(c.addrIndexedIndirect()))
		return 6
	case 0xF1:
		a, _, cross := c.addrIndirectIndexed()
		c.sbc(c.read(a))
		return 5 + b2i(cross)

	// AND
	case 0x29:
		c.A &= c.read(c.addrImmediate())
		c.Status.setNZ(c.A)
		return 2
	case 0x25:
		c.A &= c.read(c.addrZeroPage())
		c.Status.setNZ(c.A)
		return 3
	case 0x35:
		c.A &= c.read(c.addrZeroPageX())
		c.Status.setNZ(c.A)
		return 4
	case 0x2D:
		c.A &= c.read(c.addrAbsolute())
		c.Status.setNZ(c.A)
		return 4
	case 0x3D:
		a, cross := c.addrAbsoluteX()
		c.A &= c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0x39:
		a, cross := c.addrAbsoluteY()
		c.A &= c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0x21:
		c.A &= c.read(c.addrIndexedIndirect())
		c.Status.setNZ(c.A)
		return 6
	case 0x31:
		a, _, cross := c.addrIndirectIndexed()
		c.A &= c.read(a)
		c.Status.setNZ(c.A)
		return 5 + b2i(cross)

	// ORA
	case 0x09:
		c.A |= c.read(c.addrImmediate())
		c.Status.setNZ(c.A)
		return 2
	case 0x05:
		c.A |= c.read(c.addrZeroPage())
		c.Status.setNZ(c.A)
		return 3
	case 0x15:
		c.A |= c.read(c.addrZeroPageX())
		c.Status.setNZ(c.A)
		return 4
	case 0x0D:
		c.A |= c.read(c.addrAbsolute())
		c.Status.setNZ(c.A)
		return 4
	case 0x1D:
		a, cross := c.addrAbsoluteX()
		c.A |= c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0x19:
		a, cross := c.addrAbsoluteY()
		c.A |= c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0x01:
		c.A |= c.read(c.addrIndexedIndirect())
		c.Status.setNZ(c.A)
		return 6
	case 0x11:
		a, _, cross := c.addrIndirectIndexed()
		c.A |= c.read(a)
		c.Status.setNZ(c.A)
		return 5 + b2i(cross)

	// EOR
	case 0x49:
		c.A ^= c.read(c.addrImmediate())
		c.Status.setNZ(c.A)
		return 2
	case 0x45:
		c.A ^= c.read(c.addrZeroPage())
		c.Status.setNZ(c.A)
		return 3
	case 0x55:
		c.A ^= c.read(c.addrZeroPageX())
		c.Status.setNZ(c.A)
		return 4
	case 0x4D:
		c.A ^= c.read(c.addrAbsolute())
		c.Status.setNZ(c.A)
		return 4
	case 0x5D:
		a, cross := c.addrAbsoluteX()
		c.A ^= c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0x59:
		a, cross := c.addrAbsoluteY()
		c.A ^= c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0x41:
		c.A ^= c.read(c.addrIndexedIndirect())
		c.Status.setNZ(c.A)
		return 6
	case 0x51:
		a, _, cross := c.addrIndirectIndexed()
		c.A ^= c.read(a)
		c.Status.setNZ(c.A)
		return 5 + b2i(cross)

	// LDA
	case 0xA9:
		c.A = c.read(c.addrImmediate())
		c.Status.setNZ(c.A)
		return 2
	case 0xA5:
		c.A = c.read(c.addrZeroPage())
		c.Status.setNZ(c.A)
		return 3
	case 0xB5:
		c.A = c.read(c.addrZeroPageX())
		c.Status.setNZ(c.A)
		return 4
	case 0xAD:
		c.A = c.read(c.addrAbsolute())
		c.Status.setNZ(c.A)
		return 4
	case 0xBD:
		a, cross := c.addrAbsoluteX()
		c.A = c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0xB9:
		a, cross := c.addrAbsoluteY()
		c.A = c.read(a)
		c.Status.setNZ(c.A)
		return 4 + b2i(cross)
	case 0xA1:
		c.A = c.read(c.addrIndexedIndirect())
		c.Status.setNZ(c.A)
		return 6
	case 0xB1:
		a, _, cross := c.addrIndirectIndexed()
		c.A = c.read(a)
		c.Status.setNZ(c.A)
		return 5 + b2i(cross)

	// LDX
	case 0xA2:
		c.X = c.read(c.addrImmediate())
		c.Status.setNZ(c.X)
		return 2
	case 0xA6:
		c.X = c.read(c.addrZeroPage())
		c.Status.setNZ(c.X)
		return 3
	case 0xB6:
		c.X = c.read(c.addrZeroPageY())
		c.Status.setNZ(c.X)
		return 4
	case 0xAE:
		c.X = c.read(c.addrAbsolute())
		c.Status.setNZ(c.X)
		return 4
	case 0xBE:
		a, cross := c.addrAbsoluteY()
		c.X = c.read(a)
		c.Status.setNZ(c.X)
		return 4 + b2i(cross)

	// LDY
	case 0xA0:
		c.Y = c.read(c.addrImmediate())
		c.Status.setNZ(c.Y)
		return 2
	case 0xA4:
		c.Y = c.read(c.addrZeroPage())
		c.Status.setNZ(c.Y)
		return 3
	case 0xB4:
		c.Y = c.read(c.addrZeroPageX())
		c.Status.setNZ(c.Y)
		return 4
	case 0xAC:
		c.Y = c.read(c.addrAbsolute())
		c.Status.setNZ(c.Y)
		return 4
	case 0xBC:
		a, cross := c.addrAbsoluteX()
		c.Y = c.read(a)
		c.Status.setNZ(c.Y)
		return 4 + b2i(cross)

	// STA
	case 0x85:
		c.write(c.addrZeroPage(), c.A)
		return 3
	case 0x95:
		c.write(c.addrZeroPageX(), c.A)
		return 4
	case 0x8D:
		c.write(c.addrAbsolute(), c.A)
		return 4
	case 0x9D:
		a, _ := c.addrAbsoluteX()
		c.write(a, c.A)
		return 5
	case 0x99:
		a, _ := c.addrAbsoluteY()
		c.write(a, c.A)
		return 5
	case 0x81:
		c.write(c.addrIndexedIndirect(), c.A)
		return 6
	case 0x91:
		a, _, _ := c.addrIndirectIndexed()
		c.write(a, c.A)
		return 6

	// STX / STY
	case 0x86:
		c.write(c.addrZeroPage(), c.X)
		return 3
	case 0x96:
		c.write(c.addrZeroPageY(), c.X)
		return 4
	case 0x8E:
		c.write(c.addrAbsolute(), c.X)
		return 4
	case 0x84:
		c.write(c.addrZeroPage(), c.Y)
		return 3
	case 0x94:
		c.write(c.addrZeroPageX(), c.Y)
		return 4
	case 0x8C:
		c.write(c.addrAbsolute(), c.Y)
		return 4

	// CMP / CPX / CPY
	case 0xC9:
		c.cmp(c.A, c.read(c.addrImmediate()))
		return 2
	case 0xC5:
		c.cmp(c.A, c.read(c.addrZeroPage()))
		return 3
	case 0xD5:
		c.cmp(c.A, c.read(c.addrZeroPageX()))
		return 4
	case 0xCD:
		c.cmp(c.A, c.read(c.addrAbsolute()))
		return 4
	case 0xDD:
		a, cross := c.addrAbsoluteX()
		c.cmp(c.A, c.read(a))
		return 4 + b2i(cross)
	case 0xD9:
		a, cross := c.addrAbsoluteY()
		c.cmp(c.A, c.read(a))
		return 4 + b2i(cross)
	case 0xC1:
		c.cmp(c.A, c.read(c.addrIndexedIndirect()))
		return 6
	case 0xD1:
		a, _, cross := c.addrIndirectIndexed()
		c.cmp(c.A, c.read(a))
		return 5 + b2i(cross)
	case 0xE0:
		c.cmp(c.X, c.read(c.addrImmediate()))
		return 2
	case 0xE4:
		c.cmp(c.X, c.read(c.addrZeroPage()))
		return 3
	case 0xEC:
		c.cmp(c.X, c.read(c.addrAbsolute()))
		return 4
	case 0xC0:
		c.cmp(c.Y, c.read(c.addrImmediate()))
		return 2
	case 0xC4:
		c.cmp(c.Y, c.read(c.addrZeroPage()))
		return 3
	case 0xCC:
		c.cmp(c.Y, c.read(c.addrAbsolute()))
		return 4

	// BIT
	case 0x24:
		m := c.read(c.addrZeroPage())
		c.Status.Zero = c.A&m == 0
		c.Status.Sign = m&0x80 != 0
		c.Status.Overflow = m&0x40 != 0
		return 3
	case 0x2C:
		m := c.read(c.addrAbsolute())
		c.Status.Zero = c.A&m == 0
		c.Status.Sign = m&0x80 != 0
		c.Status.Overflow = m&0x40 != 0
		return 4

	// INC / DEC memory
	case 0xE6:
		a := c.addrZeroPage()
		v := c.read(a) + 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 5
	case 0xF6:
		a := c.addrZeroPageX()
		v := c.read(a) + 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 6
	case 0xEE:
		a := c.addrAbsolute()
		v := c.read(a) + 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 6
	case 0xFE:
		a, _ := c.addrAbsoluteX()
		v := c.read(a) + 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 7
	case 0xC6:
		a := c.addrZeroPage()
		v := c.read(a) - 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 5
	case 0xD6:
		a := c.addrZeroPageX()
		v := c.read(a) - 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 6
	case 0xCE:
		a := c.addrAbsolute()
		v := c.read(a) - 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 6
	case 0xDE:
		a, _ := c.addrAbsoluteX()
		v := c.read(a) - 1
		c.write(a, v)
		c.Status.setNZ(v)
		return 7

	// INX/INY/DEX/DEY
	case 0xE8:
		c.X++
		c.Status.setNZ(c.X)
		return 2
	case 0xC8:
		c.Y++
		c.Status.setNZ(c.Y)
		return 2
	case 0xCA:
		c.X--
		c.Status.setNZ(c.X)
		return 2
	case 0x88:
		c.Y--
		c.Status.setNZ(c.Y)
		return 2

	// ASL
	case 0x0A:
		c.A = c.asl(c.A)
		return 2
	case 0x06:
		a := c.addrZeroPage()
		c.write(a, c.asl(c.read(a)))
		return 5
	case 0x16:
		a := c.addrZeroPageX()
		c.write(a, c.asl(c.read(a)))
		return 6
	case 0x0E:
		a := c.addrAbsolute()
		c.write(a, c.asl(c.read(a)))
		return 6
	case 0x1E:
		a, _ := c.addrAbsoluteX()
		c.write(a, c.asl(c.read(a)))
		return 7

	// LSR
	case 0x4A:
		c.A = c.lsr(c.A)
		return 2
	case 0x46:
		a := c.addrZeroPage()
		c.write(a, c.lsr(c.read(a)))
		return 5
	case 0x56:
		a := c.addrZeroPageX()
		c.write(a, c.lsr(c.read(a)))
		return 6
	case 0x4E:
		a := c.addrAbsolute()
		c.write(a, c.lsr(c.read(a)))
		return 6
	case 0x5E:
		a, _ := c.addrAbsoluteX()
		c.write(a, c.lsr(c.read(a)))
		return 7

	// ROL
	case 0x2A:
		c.A = c.rol(c.A)
		return 2
	case 0x26:
		a := c.addrZeroPage()
		c.write(a, c.rol(c.read(a)))
		return 5
	case 0x36:
		a := c.addrZeroPageX()
		c.write(a, c.rol(c.read(a)))
		return 6
	case 0x2E:
		a := c.addrAbsolute()
		c.write(a, c.rol(c.read(a)))
		return 6
	case 0x3E:
		a, _ := c.addrAbsoluteX()
		c.write(a, c.rol(c.read(a)))
		return 7

	// ROR
	case 0x6A:
		c.A = c.ror(c.A)
		return 2
	case 0x66:
		a := c.addrZeroPage()
		c.write(a, c.ror(c.read(a)))
		return 5
	case 0x76:
		a := c.addrZeroPageX()
		c.write(a, c.ror(c.read(a)))
		return 6
	case 0x6E:
		a := c.addrAbsolute()
		c.write(a, c.ror(c.read(a)))
		return 6
	case 0x7E:
		a, _ := c.addrAbsoluteX()
		c.write(a, c.ror(c.read(a)))
		return 7

	// Jumps / calls
	case 0x4C:
		c.PC = c.fetch16()
		return 3
	case 0x6C:
		ptr := c.fetch16()
		c.PC = c.read16WrapBug(ptr)
		return 5
	case 0x20:
		a := c.fetch16()
		ret := c.PC - 1
		c.push(uint8(ret >> 8))
		c.push(uint8(ret))
		c.PC = a
		return 6
	case 0x60:
		lo := c.pull()
		hi := c.pull()
		c.PC = uint16(lo) | uint16(hi)<<8
		c.PC++
		return 6
	case 0x40:
		c.Status.Load(c.pull())
		c.Status.Break = false
		lo := c.pull()
		hi := c.pull()
		c.PC = uint16(lo) | uint16(hi)<<8
		return 6

	// Branches
	case 0x10:
		return c.branch(!c.Status.Sign)
	case 0x30:
		return c.branch(c.Status.Sign)
	case 0x50:
		return c.branch(!c.Status.Overflow)
	case 0x70:
		return c.branch(c.Status.Overflow)
	case 0x90:
		return c.branch(!c.Status.Carry)
	case 0xB0:
		return c.branch(c.Status.Carry)
	case 0xD0:
		return c.branch(!c.Status.Zero)
	case 0xF0:
		return c.branch(c.Status.Zero)

	// Transfers
	case 0xAA:
		c.X = c.A
		c.Status.setNZ(c.X)
		return 2
	case 0x8A:
		c.A = c.X
		c.Status.setNZ(c.A)
		return 2
	case 0xA8:
		c.Y = c.A
		c.Status.setNZ(c.Y)
		return 2
	case 0x98:
		c.A = c.Y
		c.Status.setNZ(c.A)
		return 2
	case 0xBA:
		c.X = c.SP
		c.Status.setNZ(c.X)
		return 2
	case 0x9A:
		c.SP = c.X
		return 2

	// Stack
	case 0x48:
		c.push(c.A)
		return 3
	case 0x68:
		c.A = c.pull()
		c.Status.setNZ(c.A)
		return 4
	case 0x08:
		c.push(c.Status.Value() | 0x10)
		return 3
	case 0x28:
		c.Status.Load(c.pull())
		c.Status.Break = false
		return 4

	// Flags
	case 0x18:
		c.Status.Carry = false
		return 2
	case 0x38:
		c.Status.Carry = true
		return 2
	case 0x58:
		c.Status.InterruptDisable = false
		return 2
	case 0x78:
		c.Status.InterruptDisable = true
		return 2
	case 0xB8:
		c.Status.Overflow = false
		return 2
	case 0xD8:
		c.Status.DecimalMode = false
		return 2
	case 0xF8:
		c.Status.DecimalMode = true
		return 2

	// BRK
	case 0x00:
		c.PC++
		return c.doInterrupt(0xFFFE, true)

	// NOPs (official + unofficial two/three byte forms)
	case 0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		return 2
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.PC++
		return 2
	case 0x04, 0x44, 0x64:
		c.PC++
		return 3
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.PC++
		return 4
	case 0x0C:
		c.PC += 2
		return 4
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		_, cross := c.addrAbsoluteX()
		return 4 + b2i(cross)

	// LAX: load A and X
	case 0xA7:
		v := c.read(c.addrZeroPage())
		c.A, c.X = v, v
		c.Status.setNZ(v)
		return 3
	case 0xB7:
		v := c.read(c.addrZeroPageY())
		c.A, c.X = v, v
		c.Status.setNZ(v)
		return 4
	case 0xAF:
		v := c.read(c.addrAbsolute())
		c.A, c.X = v, v
		c.Status.setNZ(v)
		return 4
	case 0xBF:
		a, cross := c.addrAbsoluteY()
		v := c.read(a)
		c.A, c.X = v, v
		c.Status.setNZ(v)
		return 4 + b2i(cross)
	case 0xA3:
		v := c.read(c.addrIndexedIndirect())
		c.A, c.X = v, v
		c.Status.setNZ(v)
		return 6
	case 0xB3:
		a, _, cross := c.addrIndirectIndexed()
		v := c.read(a)
		c.A, c.X = v, v
		c.Status.setNZ(v)
		return 5 + b2i(cross)

	// SAX: store A & X
	case 0x87:
		c.write(c.addrZeroPage(), c.A&c.X)
		return 3
	case 0x97:
		c.write(c.addrZeroPageY(), c.A&c.X)
		return 4
	case 0x8F:
		c.write(c.addrAbsolute(), c.A&c.X)
		return 4
	case 0x83:
		c.write(c.addrIndexedIndirect(), c.A&c.X)
		return 6

	// SLO: ASL then ORA
	case 0x07:
		a := c.addrZeroPage()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 5
	case 0x17:
		a := c.addrZeroPageX()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 6
	case 0x0F:
		a := c.addrAbsolute()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 6
	case 0x1F:
		a, _ := c.addrAbsoluteX()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 7
	case 0x1B:
		a, _ := c.addrAbsoluteY()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 7
	case 0x03:
		a := c.addrIndexedIndirect()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 8
	case 0x13:
		a, _, _ := c.addrIndirectIndexed()
		v := c.asl(c.read(a))
		c.write(a, v)
		c.A |= v
		c.Status.setNZ(c.A)
		return 8

	// RLA: ROL then AND
	case 0x27:
		a := c.addrZeroPage()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 5
	case 0x37:
		a := c.addrZeroPageX()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 6
	case 0x2F:
		a := c.addrAbsolute()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 6
	case 0x3F:
		a, _ := c.addrAbsoluteX()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 7
	case 0x3B:
		a, _ := c.addrAbsoluteY()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 7
	case 0x23:
		a := c.addrIndexedIndirect()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 8
	case 0x33:
		a, _, _ := c.addrIndirectIndexed()
		v := c.rol(c.read(a))
		c.write(a, v)
		c.A &= v
		c.Status.setNZ(c.A)
		return 8

	// SRE: LSR then EOR
	case 0x47:
		a := c.addrZeroPage()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 5
	case 0x57:
		a := c.addrZeroPageX()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 6
	case 0x4F:
		a := c.addrAbsolute()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 6
	case 0x5F:
		a, _ := c.addrAbsoluteX()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 7
	case 0x5B:
		a, _ := c.addrAbsoluteY()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 7
	case 0x43:
		a := c.addrIndexedIndirect()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 8
	case 0x53:
		a, _, _ := c.addrIndirectIndexed()
		v := c.lsr(c.read(a))
		c.write(a, v)
		c.A ^= v
		c.Status.setNZ(c.A)
		return 8

	// RRA: ROR then ADC
	case 0x67:
		a := c.addrZeroPage()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 5
	case 0x77:
		a := c.addrZeroPageX()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 6
	case 0x6F:
		a := c.addrAbsolute()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 6
	case 0x7F:
		a, _ := c.addrAbsoluteX()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 7
	case 0x7B:
		a, _ := c.addrAbsoluteY()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 7
	case 0x63:
		a := c.addrIndexedIndirect()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 8
	case 0x73:
		a, _, _ := c.addrIndirectIndexed()
		v := c.ror(c.read(a))
		c.write(a, v)
		c.adc(v)
		return 8

	// DCP: DEC then CMP
	case 0xC7:
		a := c.addrZeroPage()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 5
	case 0xD7:
		a := c.addrZeroPageX()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 6
	case 0xCF:
		a := c.addrAbsolute()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 6
	case 0xDF:
		a, _ := c.addrAbsoluteX()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 7
	case 0xDB:
		a, _ := c.addrAbsoluteY()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 7
	case 0xC3:
		a := c.addrIndexedIndirect()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 8
	case 0xD3:
		a, _, _ := c.addrIndirectIndexed()
		v := c.read(a) - 1
		c.write(a, v)
		c.cmp(c.A, v)
		return 8

	// ISC: INC then SBC
	case 0xE7:
		a := c.addrZeroPage()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 5
	case 0xF7:
		a := c.addrZeroPageX()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 6
	case 0xEF:
		a := c.addrAbsolute()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 6
	case 0xFF:
		a, _ := c.addrAbsoluteX()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 7
	case 0xFB:
		a, _ := c.addrAbsoluteY()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 7
	case 0xE3:
		a := c.addrIndexedIndirect()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 8
	case 0xF3:
		a, _, _ := c.addrIndirectIndexed()
		v := c.read(a) + 1
		c.write(a, v)
		c.sbc(v)
		return 8

	// Illegal immediates
	case 0x0B, 0x2B:
		c.anc(c.read(c.addrImmediate()))
		return 2
	case 0x4B:
		c.alr(c.read(c.addrImmediate()))
		return 2
	case 0x6B:
		c.arr(c.read(c.addrImmediate()))
		return 2
	case 0xCB:
		c.sbx(c.read(c.addrImmediate()))
		return 2

	// XAA/ANE, LXA/OAL: unstable on real silicon, canonical formula only.
	case 0x8B:
		imm := c.read(c.addrImmediate())
		c.A = c.X & imm
		c.Status.setNZ(c.A)
		return 2
	case 0xAB:
		imm := c.read(c.addrImmediate())
		c.A, c.X = imm, imm
		c.Status.setNZ(imm)
		return 2

	// LAS
	case 0xBB:
		a, cross := c.addrAbsoluteY()
		v := c.read(a) & c.SP
		c.SP, c.A, c.X = v, v, v
		c.Status.setNZ(v)
		return 4 + b2i(cross)

	// TAS/SHS, SHY, SHX, AHX: high-byte-masked stores, canonical formula only.
	case 0x9B:
		a, _ := c.addrAbsoluteY()
		sp := c.A & c.X
		c.SP = sp
		m := uint8((a>>8)+1) & 0xFF
		c.write(a, sp&m)
		return 5
	case 0x9C:
		a, _ := c.addrAbsoluteX()
		m := uint8((a>>8)+1) & 0xFF
		c.write(a, c.Y&m)
		return 5
	case 0x9E:
		a, _ := c.addrAbsoluteY()
		m := uint8((a>>8)+1) & 0xFF
		c.write(a, c.X&m)
		return 5
	case 0x9F:
		a, _ := c.addrAbsoluteY()
		m := uint8((a>>8)+1) & 0xFF
		c.write(a, c.A&c.X&m)
		return 5
	case 0x93:
		a, _, _ := c.addrIndirectIndexed()
		m := uint8((a>>8)+1) & 0xFF
		c.write(a, c.A&c.X&m)
		return 6

	default:
		// unimplemented/reserved opcode: best-effort 2 cycle NOP
		logger.Logf(logger.Allow, "cpu", "reserved opcode $%02X at $%04X", op, c.PC-1)
		return 2
	}
}
