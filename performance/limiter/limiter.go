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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate, used by cmd/nesgo's RUN mode to pace the driver loop to
// roughly 60 frames a second instead of running as fast as the host
// allows.
package limiter

import (
	"fmt"
	"time"
)

// FPSLimiter triggers once per frame at the configured rate.
type FPSLimiter struct {
	framesPerSecond int
	secondsPerFrame time.Duration

	tick chan bool
}

// NewFPSLimiter starts a limiter ticking at framesPerSecond.
func NewFPSLimiter(framesPerSecond int) *FPSLimiter {
	lim := &FPSLimiter{}
	lim.SetLimit(framesPerSecond)
	lim.tick = make(chan bool)

	go func() {
		adjusted := lim.secondsPerFrame
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lim.secondsPerFrame
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the rate the limiter waits at.
func (lim *FPSLimiter) SetLimit(framesPerSecond int) {
	lim.framesPerSecond = framesPerSecond
	lim.secondsPerFrame, _ = time.ParseDuration(fmt.Sprintf("%fs", 1.0/float64(framesPerSecond)))
}

// Wait blocks until the next tick.
func (lim *FPSLimiter) Wait() {
	<-lim.tick
}
