package scenario

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bchelf/platlab/internal/sim"
)

// FNV-1a constants shared by every host's trace hash.
const (
	fnvOffset = 0xcbf29ce484222325
	fnvPrime  = 0x100000001b3
)

// Frame is one row of the portability oracle.
type Frame struct {
	Frame    int
	X, Y     float32
	VX, VY   float32
	Grounded uint8
}

// Trace is the result of running a scenario to completion.
type Trace struct {
	Frames []Frame
	Final  sim.State
	Jumped int
	Landed int
	Bonked int
}

// Run steps the scenario's inputs through the core and collects the
// per-frame trace. The scenario itself is not mutated; the state is
// copied before the first step.
func Run(sc Scenario) Trace {
	s := sc.Initial
	tr := Trace{Frames: make([]Frame, 0, len(sc.Inputs))}

	for frame, buttons := range sc.Inputs {
		ev := sim.Step(&sc.Params, sc.World, &s, buttons)
		tr.Jumped += int(ev.Jumped)
		tr.Landed += int(ev.Landed)
		tr.Bonked += int(ev.Bonked)

		tr.Frames = append(tr.Frames, Frame{
			Frame:    frame,
			X:        s.X,
			Y:        s.Y,
			VX:       s.VX,
			VY:       s.VY,
			Grounded: s.Grounded,
		})
	}

	tr.Final = s
	return tr
}

// WriteCSV emits the trace in the cross-host oracle format:
// frame,x,y,vx,vy,grounded. Floats use the shortest round-trip form.
func (tr Trace) WriteCSV(w io.Writer) error {
	if _, err := io.WriteString(w, "frame,x,y,vx,vy,grounded\n"); err != nil {
		return err
	}
	for _, f := range tr.Frames {
		_, err := fmt.Fprintf(w, "%d,%s,%s,%s,%s,%d\n",
			f.Frame,
			formatF32(f.X), formatF32(f.Y),
			formatF32(f.VX), formatF32(f.VY),
			f.Grounded)
		if err != nil {
			return err
		}
	}
	return nil
}

func formatF32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Hash folds the rounded per-frame values into an FNV-1a digest. Rounding
// to whole pixels before hashing absorbs the sub-ULP differences platforms
// are allowed; everything larger is a parity break.
func (tr Trace) Hash() uint64 {
	h := HashSeed()
	for _, f := range tr.Frames {
		h = FoldFrame(h, f.X, f.Y, f.VX, f.VY, f.Grounded)
	}
	return h
}

// HashSeed returns the FNV-1a offset basis every trace digest starts from.
func HashSeed() uint64 {
	return fnvOffset
}

// FoldFrame mixes one frame's rounded kinematics into a running digest.
// Live hosts use this to hash as they step instead of buffering a trace.
func FoldFrame(h uint64, x, y, vx, vy float32, grounded uint8) uint64 {
	for _, value := range []int64{
		int64(sim.Round(x)),
		int64(sim.Round(y)),
		int64(sim.Round(vx)),
		int64(sim.Round(vy)),
		int64(grounded),
	} {
		for i := 0; i < 8; i++ {
			h ^= uint64(byte(value >> (8 * i)))
			h *= fnvPrime
		}
	}
	return h
}
