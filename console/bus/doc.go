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

// Package bus routes CPU and PPU address space accesses to the parts
// of the machine that answer them: RAM, the PPU register port, the
// controller port, OAM DMA, the cartridge, and, on the PPU side, CHR,
// nametable VRAM, and palette RAM.
//
// CPUBus and PPUBus are constructed once, during machine setup, and
// wired to their sibling components by reference; neither bus holds a
// pointer back to the machine that owns it.
package bus
