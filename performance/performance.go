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

import (
	"fmt"
	"io"
	"time"

	"github.com/retrograde-labs/nesgo/console"
)

// Check drives a loaded console for the specified duration and reports
// a frames-per-second figure to output. A two second leadtime runs
// first, uncounted, so the measurement isn't skewed by the first
// frame's extra setup cost; profile additionally captures a CPU
// profile (and, afterwards, a heap profile) of the measured run.
func Check(output io.Writer, profile bool, romFile string, duration string) error {
	c, err := console.Load(romFile)
	if err != nil {
		return err
	}
	c.Reset()

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// two second leadtime, run uncounted
	leadtimeDeadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(leadtimeDeadline) {
		c.RunUntilFrame(1_000_000)
	}

	var numFrames int
	err = cpuProfile(profile, "cpu.profile", func() error {
		deadline := time.Now().Add(dur)
		for time.Now().Before(deadline) {
			if c.RunUntilFrame(1_000_000) {
				numFrames++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return memProfile(profile, "mem.profile")
}
