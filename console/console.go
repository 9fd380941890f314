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

// Package console wires the CPU, PPU, memory buses, cartridge, and
// controller into a single NES and drives them with the interleaved
// step loop the hardware actually runs: one CPU instruction, then
// three PPU dots per cycle that instruction consumed.
package console

import (
	"github.com/retrograde-labs/nesgo/cartridge"
	"github.com/retrograde-labs/nesgo/cartridgeloader"
	"github.com/retrograde-labs/nesgo/console/bus"
	"github.com/retrograde-labs/nesgo/console/cpu"
	"github.com/retrograde-labs/nesgo/console/ppu"
	"github.com/retrograde-labs/nesgo/digest"
	"github.com/retrograde-labs/nesgo/input"
	"github.com/retrograde-labs/nesgo/logger"
)

// Console is the aggregate NES: CPU and PPU as fields, connected
// through their buses to a cartridge and a controller. No component
// holds a pointer back to another; cross-component side effects (OAM
// DMA stalls, NMI delivery) are injected closures supplied here at
// construction time.
type Console struct {
	CPU *cpu.CPU
	PPU *ppu.PPU

	cpuBus *bus.CPUBus
	ppuBus *bus.PPUBus

	Cartridge   *cartridge.Cartridge
	Controller1 *input.Controller

	frameDigest *digest.Video
	nmiCount    int
}

// New constructs a Console around an already-decoded cartridge. Call
// Reset before stepping it.
func New(cart *cartridge.Cartridge) *Console {
	c := &Console{
		Cartridge:   cart,
		Controller1: input.NewController(),
		frameDigest: digest.NewVideo(256, 240),
	}

	c.ppuBus = bus.NewPPUBus(cart)
	c.PPU = ppu.NewPPU(c.ppuBus, c.onNMI)

	// CPUBus needs the CPU's cycle/stall closures, but the CPU needs the
	// bus as its Memory, so the closures are built first and resolve
	// c.CPU lazily, once it exists below.
	c.cpuBus = bus.NewCPUBus(c.PPU, cart, c.Controller1,
		func() uint64 { return c.CPU.Cycles() },
		func(n int) { c.CPU.AddStall(n) },
	)
	c.CPU = cpu.NewCPU(c.cpuBus)

	return c
}

// Load reads filename from disk, decodes it as an iNES 1.0 ROM, and
// returns a Console ready to Reset and run. This is the `load`
// contract of the host-facing surface.
func Load(filename string) (*Console, error) {
	cl := cartridgeloader.NewLoader(filename)
	if err := cl.Load(); err != nil {
		return nil, err
	}

	cart, err := cartridge.Load(filename, cl.Data)
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "console", "loaded %s (mapper %d, %s mirroring)", filename, cart.Mapper, cart.Mirroring())
	return New(cart), nil
}

// onNMI is passed to ppu.NewPPU so the PPU can raise the CPU's NMI
// line without holding a pointer back to the CPU.
func (c *Console) onNMI() {
	c.CPU.SetNMI()
	c.nmiCount++
}

// Reset brings the CPU and PPU to their power-up state. The CPU loads
// PC from the cartridge's reset vector.
func (c *Console) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.nmiCount = 0
	c.frameDigest.Reset()
}

// SetController sets controller 1's held-button state. Bit 0 is A, bit
// 7 is Right. This is the host-facing set_controller contract.
func (c *Console) SetController(state uint8) {
	c.Controller1.SetState(state)
}

// Step advances the console by exactly one CPU instruction (or one
// cycle of CPU stall) and the three PPU dots per CPU cycle that
// consumed. It reports whether a new frame became ready during those
// PPU ticks.
func (c *Console) Step() bool {
	cycles := c.CPU.Step()
	frameReady := false
	for i := 0; i < cycles*3; i++ {
		c.PPU.Step()
		if c.PPU.FrameReady() {
			frameReady = true
		}
	}
	if frameReady {
		c.frameDigest.Update(c.PPU.Framebuffer())
	}
	return frameReady
}

// RunUntilFrame steps the console until a frame becomes ready or
// maxInstructions CPU steps have elapsed, whichever comes first. It
// reports whether a frame became ready, matching the host-facing
// run_until_frame contract. maxInstructions bounds every kind of CPU
// step, including stall cycles, so a stuck or run-away program can
// never hang the caller.
func (c *Console) RunUntilFrame(maxInstructions int) bool {
	for i := 0; i < maxInstructions; i++ {
		if c.Step() {
			return true
		}
	}
	return false
}

// Framebuffer returns the most recently completed frame as 256x240
// RGBA8888 pixels, row-major. This is the host-facing framebuffer
// contract.
func (c *Console) Framebuffer() []byte {
	return c.PPU.Framebuffer()
}

// FrameDigest returns the SHA-1 hash of the framebuffer as it stood
// after the most recently completed frame. Because the hash depends
// only on the current framebuffer, not any frame before it, an
// unchanging picture produces the same digest frame after frame --
// that repetition is what end-to-end scenarios watch for to tell that
// rendering has settled.
func (c *Console) FrameDigest() string {
	return c.frameDigest.Hash()
}

// NMICount reports how many NMIs the PPU has raised since the last
// Reset, a diagnostic counter per the error handling design's headless
// inspection mode.
func (c *Console) NMICount() int {
	return c.nmiCount
}

// Cycles reports the CPU's running cycle count, a diagnostic counter.
func (c *Console) Cycles() uint64 {
	return c.CPU.Cycles()
}

// Scanline and Dot report the PPU's current position, diagnostic
// counters for the headless inspection mode.
func (c *Console) Scanline() int { return c.PPU.Scanline() }
func (c *Console) Dot() int      { return c.PPU.Dot() }
