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

package cartridgeloader

import (
	"os"

	"github.com/retrograde-labs/nesgo/curated"
)

// error kinds surfaced at the loader boundary. bad-header/is-elf/oom/
// unsupported-mapper come from the cartridge package one layer up,
// once the bytes here have been handed off for decoding.
const (
	OpenFailed = "open-failed: %s"
	ReadFailed = "read-failed: %s"
)

// Loader is used to specify the cartridge file to load.
type Loader struct {
	// filename of cartridge to load.
	Filename string

	// copy of the loaded data. once it is non-empty, subsequent calls to
	// Load() leave it as it is and do not read the file again.
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load reads the cartridge file named by Filename into Data.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	f, err := os.Open(cl.Filename)
	if err != nil {
		return curated.Errorf(OpenFailed, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return curated.Errorf(ReadFailed, err)
	}

	cl.Data = make([]byte, fi.Size())
	if _, err := f.Read(cl.Data); err != nil {
		return curated.Errorf(ReadFailed, err)
	}

	return nil
}

