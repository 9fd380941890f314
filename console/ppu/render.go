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

package ppu

// palette is a compact NTSC-ish 64 color table indexed by the low 6
// bits of a palette RAM entry. Packed as 0x00RRGGBB.
var palette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
}

func paletteRGB(idx uint8) uint32 {
	return palette[idx&0x3F]
}

// bgPixel returns the background pixel (0-3, 0 meaning transparent)
// and its palette index at screen coordinates (x, y), using the
// latched scroll position rather than the real v/t scroll registers.
func (p *PPU) bgPixel(x, y int) (px uint8, palIdx uint8) {
	if p.regMask&0x08 == 0 {
		return 0, 0
	}

	X := (x + int(p.scrollX)) & 511
	Y := (y + int(p.scrollY)) % 480
	if Y < 0 {
		Y += 480
	}

	sx := X & 255
	sy := Y % 240
	tileX := sx / 8
	tileY := sy / 8
	fineY := sy & 7

	nt := int(p.renderCtrl & 0x03)
	if X >= 256 {
		nt ^= 1
	}
	if Y >= 240 {
		nt ^= 2
	}
	baseNT := uint16(0x2000 + nt*0x0400)
	basePT := uint16(0)
	if p.renderCtrl&0x10 != 0 {
		basePT = 0x1000
	}

	ntAddr := baseNT + uint16(tileY*32+tileX)
	tile := p.bus.Read(ntAddr)

	atAddr := baseNT + 0x3C0 + uint16((tileY/4)*8+(tileX/4))
	at := p.bus.Read(atAddr)
	quadrant := 0
	if tileY&2 != 0 {
		quadrant |= 2
	}
	if tileX&2 != 0 {
		quadrant |= 1
	}
	pal := (at >> (uint(quadrant) * 2)) & 0x03

	ptAddr := basePT + uint16(tile)*16 + uint16(fineY)
	lo := p.bus.Read(ptAddr)
	hi := p.bus.Read(ptAddr + 8)
	bit := 7 - (sx & 7)
	px = (((hi >> uint(bit)) & 1) << 1) | ((lo >> uint(bit)) & 1)
	return px, pal
}

// evalSprites fills scanSprites with up to 8 sprites visible on
// scanline y, setting the overflow flag if more than 8 qualify.
func (p *PPU) evalSprites(y int) {
	p.scanSprites = p.scanSprites[:0]
	p.regStatus &^= 0x20

	spriteH := 8
	if p.regCtrl&0x20 != 0 {
		spriteH = 16
	}

	found := 0
	for i := 0; i < 64; i++ {
		sy := p.OAM[i*4]
		top := int(sy) + 1
		if y < top || y >= top+spriteH {
			continue
		}
		if found < 8 {
			p.scanSprites = append(p.scanSprites, spriteSlot{
				index: uint8(i),
				y:     sy,
				tile:  p.OAM[i*4+1],
				attr:  p.OAM[i*4+2],
				x:     p.OAM[i*4+3],
			})
		}
		found++
	}
	if found > 8 {
		p.regStatus |= 0x20
	}
}

func spriteTileAddr(renderCtrl uint8, spriteH int, tile uint8, row int) uint16 {
	if spriteH == 8 {
		base := uint16(0)
		if renderCtrl&0x08 != 0 {
			base = 0x1000
		}
		return base + uint16(tile)*16 + uint16(row)
	}
	table := uint16(0)
	if tile&1 != 0 {
		table = 0x1000
	}
	tileBase := uint16(tile &^ 1)
	if row >= 8 {
		tileBase++
		row -= 8
	}
	return table + tileBase*16 + uint16(row)
}

// spritePixel returns the highest-priority opaque sprite pixel at
// screen coordinates (x, y), its palette index, whether it sits
// behind the background, and whether it belongs to OAM sprite 0.
func (p *PPU) spritePixel(x, y int) (px, palIdx, priority uint8, isSprite0 bool) {
	if p.regMask&0x10 == 0 {
		return 0, 0, 0, false
	}
	if x < 8 && p.regMask&0x04 == 0 {
		return 0, 0, 0, false
	}

	spriteH := 8
	if p.renderCtrl&0x20 != 0 {
		spriteH = 16
	}

	for _, s := range p.scanSprites {
		if x < int(s.x) || x >= int(s.x)+8 {
			continue
		}
		top := int(s.y) + 1
		row := y - top
		col := x - int(s.x)
		flipH := s.attr&0x40 != 0
		flipV := s.attr&0x80 != 0
		if flipH {
			col = 7 - col
		}
		if flipV {
			row = (spriteH - 1) - row
		}

		ptAddr := spriteTileAddr(p.renderCtrl, spriteH, s.tile, row)
		lo := p.bus.Read(ptAddr)
		hi := p.bus.Read(ptAddr + 8)
		bit := 7 - col
		v := (((hi >> uint(bit)) & 1) << 1) | ((lo >> uint(bit)) & 1)
		if v == 0 {
			continue
		}

		priority = 0
		if s.attr&0x20 != 0 {
			priority = 1
		}
		return v, s.attr & 0x03, priority, s.index == 0
	}

	return 0, 0, 0, false
}

// sprite0Pixel reports the raw pixel value of OAM sprite 0 at screen
// coordinates (x, y), read straight from OAM entry 0 rather than from
// the scanSprites cache that evalSprites fills.
func (p *PPU) sprite0Pixel(x, y int) uint8 {
	if p.regMask&0x10 == 0 {
		return 0
	}
	if x < 8 && p.regMask&0x04 == 0 {
		return 0
	}

	spriteY := p.OAM[0]
	tile := p.OAM[1]
	attr := p.OAM[2]
	spriteX := p.OAM[3]

	spriteH := 8
	if p.renderCtrl&0x20 != 0 {
		spriteH = 16
	}
	top := int(spriteY) + 1
	if y < top || y >= top+spriteH {
		return 0
	}
	if x < int(spriteX) || x >= int(spriteX)+8 {
		return 0
	}

	row := y - top
	col := x - int(spriteX)
	if attr&0x40 != 0 {
		col = 7 - col
	}
	if attr&0x80 != 0 {
		row = (spriteH - 1) - row
	}

	ptAddr := spriteTileAddr(p.renderCtrl, spriteH, tile, row)
	lo := p.bus.Read(ptAddr)
	hi := p.bus.Read(ptAddr + 8)
	bit := 7 - col
	return (((hi >> uint(bit)) & 1) << 1) | ((lo >> uint(bit)) & 1)
}

// renderScanline fills one row of the framebuffer by compositing the
// background and sprite layers pixel by pixel.
func (p *PPU) renderScanline(y int) {
	for x := 0; x < width; x++ {
		bgPx, bgPal := p.bgPixel(x, y)
		if x < 8 && p.regMask&0x02 == 0 {
			bgPx = 0
		}

		spPx, spPal, spPri, _ := p.spritePixel(x, y)

		bgOpaque := bgPx != 0 && p.regMask&0x08 != 0
		spOpaque := spPx != 0 && p.regMask&0x10 != 0

		var colorIdx uint8
		switch {
		case spOpaque && (!bgOpaque || spPri == 0):
			colorIdx = p.bus.Read(0x3F10+1+uint16(spPal)*4+uint16(spPx-1)) & 0x3F
		case bgOpaque:
			colorIdx = p.bus.Read(0x3F00+1+uint16(bgPal)*4+uint16(bgPx-1)) & 0x3F
		default:
			colorIdx = p.bus.Read(0x3F00) & 0x3F
		}
		p.framebuffer[y*width+x] = paletteRGB(colorIdx)
	}
}

// Step advances the PPU by one dot (1/3 of a CPU cycle). Scanlines
// run -1 (pre-render) through 260, 341 dots each.
func (p *PPU) Step() {
	if p.scanline == -1 && p.dot == 0 {
		p.scrollX = p.scrollXNext
		p.scrollY = p.scrollYNext
		p.renderCtrl = p.renderCtrlNext
	}
	if p.scanline >= 0 && p.scanline < height && p.dot == 257 {
		p.scrollX = p.scrollXNext
		p.renderCtrl = p.renderCtrlNext
	}

	if p.scanline >= 0 && p.scanline < height && p.dot == 0 {
		p.evalSprites(p.scanline)
		p.renderScanline(p.scanline)
	}

	if p.regStatus&0x40 == 0 && p.scanline >= 0 && p.scanline < height && p.dot >= 1 && p.dot <= 256 {
		x := p.dot - 1
		maskedOut := x < 8 && (p.regMask&0x02 == 0 || p.regMask&0x04 == 0)
		if !maskedOut {
			s0 := p.sprite0Pixel(x, p.scanline)
			if s0 != 0 && p.regMask&0x08 != 0 && p.regMask&0x10 != 0 {
				p.regStatus |= 0x40
			}
		}
	}

	if p.scanline == 241 && p.dot == 1 {
		p.regStatus |= 0x80
		if p.regCtrl&0x80 != 0 {
			p.triggerNMI()
		}
		p.frameReady = true
	}

	if p.scanline == -1 && p.dot == 1 {
		p.regStatus &^= 0x80
		p.regStatus &^= 0x40
	}

	p.dot++
	if p.dot >= 341 {
		p.dot = 0
		p.scanline++
		if p.scanline >= 261 {
			p.scanline = -1
		}
	}
}
