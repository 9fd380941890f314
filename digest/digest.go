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

// Package digest produces a cryptographic hash of a video frame.
// Comparing hashes across runs tells us whether rendering has changed,
// and watching a hash repeat across consecutive frames tells us a
// picture has stabilized.
package digest

// Digest implementations return a hex hash in response to Hash() and
// can be reset back to an all-zero hash with Reset().
type Digest interface {
	Hash() string
	Reset()
}
