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

// Package cpu implements the 2A03's 6502-derived instruction set: all
// official opcodes plus the unofficial opcodes commercial NES ROMs are
// known to rely on. It does not model audio (the 2A03's APU is a
// separate, unimplemented concern) and it counts cycles per
// instruction rather than stepping sub-instruction bus phases, which
// is accurate for program behaviour but not for mid-instruction bus
// snooping.
package cpu
