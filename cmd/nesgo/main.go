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

package main

import (
	"fmt"
	"os"

	"github.com/retrograde-labs/nesgo/console"
	"github.com/retrograde-labs/nesgo/diagnostics"
	"github.com/retrograde-labs/nesgo/input/keyboard"
	"github.com/retrograde-labs/nesgo/logger"
	"github.com/retrograde-labs/nesgo/modalflag"
	"github.com/retrograde-labs/nesgo/performance"
	perflimiter "github.com/retrograde-labs/nesgo/performance/limiter"
	"github.com/retrograde-labs/nesgo/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PERFORM")

	ver := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	if p == modalflag.ParseContinue && *ver {
		fmt.Printf("%s (%s)\n", version.ApplicationName, version.Revision())
		return
	}
	switch p {
	case modalflag.ParseHelp:
		return
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "PERFORM":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	digestEvery := md.AddInt("digestevery", 60, "print a frame digest every N frames (0 disables)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, false)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM file required for %s mode", md)
	}

	c, err := console.Load(md.GetArg(0))
	if err != nil {
		return err
	}
	c.Reset()

	kbd, err := keyboard.NewReader()
	if err != nil {
		return err
	}
	defer kbd.Close()

	ntscFPS := performance.NTSCFramesPerSecond
	fps := perflimiter.NewFPSLimiter(int(ntscFPS))

	frame := 0
	for {
		c.SetController(kbd.Poll())
		if c.RunUntilFrame(1_000_000) {
			frame++
			if *digestEvery > 0 && frame%*digestEvery == 0 {
				fmt.Printf("frame %d: %s\n", frame, c.FrameDigest())
			}
			fps.Wait()
		}
	}
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")
	stats := md.AddBool("stats", false, "launch a live runtime stats server (requires the statsview build tag)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM file required for %s mode", md)
	}

	if *stats {
		if !diagnostics.Available() {
			fmt.Println("! stats server requested but this binary was built without the statsview tag")
		} else {
			diagnostics.Launch(md.Output)
		}
	}

	return performance.Check(md.Output, *profile, md.GetArg(0), *duration)
}
