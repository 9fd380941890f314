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

package performance

// NTSCFramesPerSecond is the NES's nominal NTSC frame rate: the PPU's
// 341x262 dot grid at the NTSC master clock, with 12 master-clock
// cycles per CPU cycle and 3 PPU dots per CPU cycle.
const NTSCFramesPerSecond = 60.0988

// CalcFPS takes the number of frames rendered and the wall-clock
// duration (in seconds) they took and returns the measured
// frames-per-second and its accuracy as a percentage of the NES's
// nominal NTSC rate.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / NTSCFramesPerSecond
	return fps, accuracy
}
