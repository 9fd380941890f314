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

package digest_test

import (
	"testing"

	"github.com/retrograde-labs/nesgo/digest"
)

func TestVideo_SameFrameSequenceProducesSameHash(t *testing.T) {
	frame := make([]byte, 256*240*4)
	frame[0] = 0x11

	a := digest.NewVideo(256, 240)
	b := digest.NewVideo(256, 240)

	var ha, hb string
	for i := 0; i < 5; i++ {
		ha = a.Update(frame)
		hb = b.Update(frame)
	}

	if ha != hb {
		t.Fatalf("expected identical hash for identical frame sequences, got %s and %s", ha, hb)
	}
}

func TestVideo_DifferingFrameChangesHash(t *testing.T) {
	frameA := make([]byte, 256*240*4)
	frameB := make([]byte, 256*240*4)
	frameB[100] = 0xFF

	a := digest.NewVideo(256, 240)
	b := digest.NewVideo(256, 240)

	a.Update(frameA)
	b.Update(frameB)

	if a.Hash() == b.Hash() {
		t.Fatalf("expected differing frames to produce differing hashes")
	}
}

// A static framebuffer must produce the same hash on every call, not
// just the same hash as some other instance fed the same sequence --
// this is what lets a caller detect a stabilized picture by watching
// consecutive digests repeat.
func TestVideo_StaticFrameRepeatsHash(t *testing.T) {
	frame := make([]byte, 256*240*4)
	frame[42] = 0x7F

	dig := digest.NewVideo(256, 240)
	first := dig.Update(frame)
	for i := 0; i < 30; i++ {
		if got := dig.Update(frame); got != first {
			t.Fatalf("update %d: hash changed for an identical frame: got %s, want %s", i, got, first)
		}
	}
}

func TestVideo_Reset(t *testing.T) {
	frame := make([]byte, 256*240*4)
	dig := digest.NewVideo(256, 240)
	dig.Update(frame)
	dig.Reset()
	if dig.Hash() != "0000000000000000000000000000000000000000" {
		t.Fatalf("expected reset digest to be all zero, got %s", dig.Hash())
	}
}
