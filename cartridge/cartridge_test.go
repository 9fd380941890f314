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

package cartridge_test

import (
	"testing"

	"github.com/retrograde-labs/nesgo/cartridge"
	"github.com/retrograde-labs/nesgo/curated"
)

func iNESHeader(prgChunks, chrChunks, flags6, flags7 byte) []byte {
	h := make([]byte, 16)
	h[0], h[1], h[2], h[3] = 'N', 'E', 'S', 0x1A
	h[4] = prgChunks
	h[5] = chrChunks
	h[6] = flags6
	h[7] = flags7
	h[8] = 0
	return h
}

func TestLoad_RejectsBadMagic(t *testing.T) {
	data := make([]byte, 16+16*1024)
	_, err := cartridge.Load("bad.nes", data)
	if !curated.Is(err, cartridge.BadHeader) {
		t.Fatalf("expected bad-header error, got %v", err)
	}
}

func TestLoad_RejectsELF(t *testing.T) {
	data := []byte{0x7F, 'E', 'L', 'F', 0, 0, 0, 0}
	_, err := cartridge.Load("bad.elf", data)
	if !curated.Is(err, cartridge.IsELF) {
		t.Fatalf("expected is-elf error, got %v", err)
	}
}

func TestLoad_RejectsUnsupportedMapper(t *testing.T) {
	data := iNESHeader(1, 1, 0x10, 0x00) // mapper low nibble = 1
	data = append(data, make([]byte, 16*1024+8*1024)...)
	_, err := cartridge.Load("mmc1.nes", data)
	if !curated.Is(err, cartridge.UnsupportedMapper) {
		t.Fatalf("expected unsupported-mapper error, got %v", err)
	}
}

func TestLoad_NROM16KiBMirrorsPRG(t *testing.T) {
	data := iNESHeader(1, 1, 0x00, 0x00)
	prg := make([]byte, 16*1024)
	prg[len(prg)-4] = 0x00
	prg[len(prg)-3] = 0x80
	prg[len(prg)-2] = 0x00
	prg[len(prg)-1] = 0x00
	data = append(data, prg...)
	data = append(data, make([]byte, 8*1024)...)

	cart, err := cartridge.Load("nrom16.nes", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// $8000 and $C000 both read the same 16 KiB bank
	if cart.CPURead(0x8000) != cart.CPURead(0xC000) {
		t.Errorf("expected 16 KiB PRG to mirror at $C000")
	}

	reset := uint16(cart.CPURead(0xFFFC)) | uint16(cart.CPURead(0xFFFD))<<8
	if reset != 0x8000 {
		t.Errorf("expected reset vector $8000, got %#04x", reset)
	}
}

func TestLoad_NROM32KiBNoMirror(t *testing.T) {
	data := iNESHeader(2, 1, 0x00, 0x00)
	prg := make([]byte, 32*1024)
	prg[0] = 0xAA
	prg[0x4000] = 0xBB
	data = append(data, prg...)
	data = append(data, make([]byte, 8*1024)...)

	cart, err := cartridge.Load("nrom32.nes", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cart.CPURead(0x8000) != 0xAA {
		t.Errorf("expected $8000 to read bank start")
	}
	if cart.CPURead(0xC000) != 0xBB {
		t.Errorf("expected $C000 to read the second half of the 32 KiB bank")
	}
}

func TestLoad_CHRRAMWhenZeroChunks(t *testing.T) {
	data := iNESHeader(1, 0, 0x00, 0x00)
	data = append(data, make([]byte, 16*1024)...)

	cart, err := cartridge.Load("chrram.nes", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart.PPUWrite(0x0000, 0x42)
	if cart.PPURead(0x0000) != 0x42 {
		t.Errorf("expected CHR RAM to be writable when CHR chunk count is zero")
	}
}

func TestLoad_CHRROMIsReadOnly(t *testing.T) {
	data := iNESHeader(1, 1, 0x00, 0x00)
	data = append(data, make([]byte, 16*1024)...)
	chr := make([]byte, 8*1024)
	chr[0] = 0x99
	data = append(data, chr...)

	cart, err := cartridge.Load("chrrom.nes", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart.PPUWrite(0x0000, 0x00)
	if cart.PPURead(0x0000) != 0x99 {
		t.Errorf("expected CHR ROM writes to be ignored")
	}
}

func TestLoad_Mirroring(t *testing.T) {
	cases := []struct {
		flags6 byte
		want   cartridge.Mirroring
	}{
		{0x00, cartridge.MirrorHorizontal},
		{0x01, cartridge.MirrorVertical},
		{0x08, cartridge.MirrorFourScreen},
	}

	for _, c := range cases {
		data := iNESHeader(1, 1, c.flags6, 0x00)
		data = append(data, make([]byte, 16*1024+8*1024)...)
		cart, err := cartridge.Load("m.nes", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.Mirroring() != c.want {
			t.Errorf("flags6=%#02x: got mirroring %v, want %v", c.flags6, cart.Mirroring(), c.want)
		}
	}
}

func TestLoad_SkipsTrainer(t *testing.T) {
	data := iNESHeader(1, 1, 0x04, 0x00) // trainer present bit
	data = append(data, make([]byte, 512)...)
	prg := make([]byte, 16*1024)
	prg[0] = 0x7E
	data = append(data, prg...)
	data = append(data, make([]byte, 8*1024)...)

	cart, err := cartridge.Load("trainer.nes", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.HasTrainer {
		t.Errorf("expected HasTrainer to be true")
	}
	if cart.CPURead(0x8000) != 0x7E {
		t.Errorf("expected PRG to start after the 512 byte trainer")
	}
}
