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

package curated_test

import (
	"testing"

	"github.com/retrograde-labs/nesgo/curated"
)

func TestError(t *testing.T) {
	e := curated.Errorf("cartridge: %s", "foo")
	if e.Error() != "cartridge: foo" {
		t.Errorf("unexpected error message: %s", e.Error())
	}

	// wrapping an error of the same pattern next to itself collapses the
	// duplicate part
	f := curated.Errorf("cartridge: %v", e)
	if f.Error() != "cartridge: foo" {
		t.Errorf("unexpected duplicate error message: %s", f.Error())
	}
}

func TestIsAndHas(t *testing.T) {
	const pattern = "bus: unmapped address (%#04x)"

	e := curated.Errorf(pattern, 0x5000)
	if !curated.Is(e, pattern) {
		t.Errorf("expected Is() to match the originating pattern")
	}

	wrapped := curated.Errorf("console: %v", e)
	if curated.Is(wrapped, pattern) {
		t.Errorf("did not expect Is() to match a wrapped pattern")
	}
	if !curated.Has(wrapped, pattern) {
		t.Errorf("expected Has() to find the pattern in the chain")
	}

	if curated.IsAny(nil) {
		t.Errorf("nil error should not be curated")
	}
	if !curated.IsAny(e) {
		t.Errorf("expected e to be a curated error")
	}
}
