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

// Package ppu implements the 2C02 picture processing unit: the
// register port the CPU bus exposes at $2000-$2007, OAM, a simplified
// scanline renderer driven by the latched $2005 scroll values and
// $2000 nametable bits rather than the real v/t/x-fine scroll
// registers, sprite evaluation
// with the eight-sprites-per-scanline overflow flag, and a best-effort
// sprite-0 hit test. It is not cycle-accurate: it renders a whole
// scanline's worth of pixels at dot 0 of that scanline rather than one
// pixel per dot, which is invisible to software that only observes
// PPU state through vblank, sprite-0 hit, and the framebuffer.
package ppu
