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

package cartridge

// Error patterns used with curated.Errorf. These are the error kinds
// named at the loader boundary: bad-header, is-elf, oom, and
// unsupported-mapper. open-failed and read-failed are raised one layer
// up, in cartridgeloader, where the file I/O happens.
const (
	BadHeader         = "bad-header: %s"
	IsELF             = "is-elf"
	OutOfMemory       = "oom: %s"
	UnsupportedMapper = "unsupported-mapper: %d"
)
