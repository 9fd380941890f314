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

package console

import (
	"testing"

	"github.com/retrograde-labs/nesgo/cartridge"
)

// buildNROM32 returns a minimal 32 KiB PRG / 8 KiB CHR iNES 1.0 image.
// PRG starts zero-filled; each prgTail entry writes one byte at its
// PRG offset, so callers can place a reset vector (and any code at
// fixed addresses).
func buildNROM32(t *testing.T, prgTail map[int]uint8) []byte {
	t.Helper()
	const headerSize = 16
	const prgSize = 32 * 1024
	const chrSize = 8 * 1024

	data := make([]byte, headerSize+prgSize+chrSize)
	copy(data[0:4], []byte{'N', 'E', 'S', 0x1A})
	data[4] = 2 // 32 KiB PRG
	data[5] = 1 // 8 KiB CHR
	data[6] = 0 // horizontal mirroring, mapper 0

	prg := data[headerSize : headerSize+prgSize]
	for offset, v := range prgTail {
		prg[offset] = v
	}
	return data
}

func newTestConsole(t *testing.T, prgTail map[int]uint8) *Console {
	t.Helper()
	data := buildNROM32(t, prgTail)
	cart, err := cartridge.Load("test.nes", data)
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	c := New(cart)
	c.Reset()
	return c
}

// Scenario 1: reset vector. PRG-ROM with last 6 bytes $00 $00 $00 $80
// $00 $00 sets PC = $8000 after load.
func TestScenario_ResetVector(t *testing.T) {
	c := newTestConsole(t, map[int]uint8{
		32*1024 - 6: 0x00,
		32*1024 - 5: 0x00,
		32*1024 - 4: 0x00,
		32*1024 - 3: 0x80,
		32*1024 - 2: 0x00,
		32*1024 - 1: 0x00,
	})
	if c.CPU.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want $8000", c.CPU.PC)
	}
	if c.CPU.SP != 0xFD {
		t.Fatalf("SP = %#02x, want $FD", c.CPU.SP)
	}
	if !c.CPU.Status.InterruptDisable {
		t.Fatal("expected interrupt-disable set after reset")
	}
	if c.Cycles() != 7 {
		t.Fatalf("cycles = %d, want 7", c.Cycles())
	}
}

// Scenario 2: controller shift. With controller byte $81, write 1 then
// 0 to $4016; eight consecutive reads of $4016 yield bit-0 sequence
// 1,0,0,0,0,0,0,1.
func TestScenario_ControllerShift(t *testing.T) {
	c := newTestConsole(t, map[int]uint8{32*1024 - 4: 0x80})
	c.SetController(0x81)
	c.cpuBus.Write(0x4016, 1)
	c.cpuBus.Write(0x4016, 0)

	want := []uint8{1, 0, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		got := c.cpuBus.Read(0x4016) & 1
		if got != w {
			t.Fatalf("read %d: got bit %d, want %d", i, got, w)
		}
	}
}

// Scenario 3: OAM DMA. Writing $02 to $4014 after storing $AA at
// $0200..$02FF copies it into OAM and stalls the CPU by at least 513
// cycles.
func TestScenario_OAMDMA(t *testing.T) {
	c := newTestConsole(t, map[int]uint8{32*1024 - 4: 0x80})
	for i := 0x0200; i <= 0x02FF; i++ {
		c.cpuBus.Write(uint16(i), 0xAA)
	}
	c.cpuBus.Write(0x4014, 0x02)

	start := c.Cycles()
	pc := c.CPU.PC
	for i := 0; i < 513; i++ {
		c.Step()
	}
	if c.Cycles()-start != 513 || c.CPU.PC != pc {
		t.Fatalf("after 513 steps: %d cycles, PC %#04x; want 513 one-cycle stall steps with PC still %#04x", c.Cycles()-start, c.CPU.PC, pc)
	}
	for i, v := range c.PPU.OAM {
		if v != 0xAA {
			t.Fatalf("OAM[%d] = %#02x, want $AA", i, v)
		}
	}
}

// Scenario 5: NMI on vblank. After enabling rendering and NMI and
// running until a frame is ready, the NMI counter is at least 1.
func TestScenario_NMIOnVBlank(t *testing.T) {
	c := newTestConsole(t, map[int]uint8{32*1024 - 4: 0x80})
	c.PPU.WriteRegister(0, 0x80) // PPUCTRL: NMI on vblank
	c.PPU.WriteRegister(1, 0x18) // PPUMASK: show background and sprites

	if !c.RunUntilFrame(200000) {
		t.Fatal("expected a frame to become ready within the instruction budget")
	}
	if c.NMICount() < 1 {
		t.Fatalf("NMICount() = %d, want >= 1", c.NMICount())
	}
}

// Scenario 6: hello ROM. A program that parks in a tight JMP-to-self
// loop after enabling rendering produces a framebuffer whose digest
// stabilizes: once the PPU has painted whatever is in its (empty, in
// this fixture) pattern and nametable RAM, every subsequent frame
// paints the same pixels.
func TestScenario_HelloROM(t *testing.T) {
	c := newTestConsole(t, map[int]uint8{
		0: 0x4C, 1: 0x00, 2: 0x80, // JMP $8000
		32*1024 - 3: 0x80, // reset vector $8000
	})
	c.PPU.WriteRegister(1, 0x18) // PPUMASK: show background and sprites

	const numFrames = 180
	const stableRun = 30
	var last string
	run := 0
	for i := 0; i < numFrames; i++ {
		if !c.RunUntilFrame(1_000_000) {
			t.Fatalf("frame %d: expected a frame to become ready", i)
		}
		digest := c.FrameDigest()
		if digest == last {
			run++
		} else {
			run = 1
			last = digest
		}
	}
	if run < stableRun {
		t.Fatalf("framebuffer digest only stable for %d consecutive frames, want >= %d", run, stableRun)
	}
}
