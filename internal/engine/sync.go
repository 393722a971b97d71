package engine

import (
	"math"

	"flowscope/internal/artifact"
)

// Synchronize aligns every trace except the anchor onto the anchor's
// elapsed-time position. The anchor's elapsed time is the cumulative
// duration of its steps up to and including anchorStepIndex; each other
// trace gets the step index whose own cumulative time is closest to that,
// with ties resolved to the earliest index. Traces with no steps are
// omitted from the result. Missing durations count as zero.
//
// The computation is a pure function of the declared durations; no playback
// state is consulted.
func Synchronize(anchorTraceID string, anchorStepIndex int, traces []artifact.Trace) map[string]int {
	var anchor *artifact.Trace
	for i := range traces {
		if traces[i].TraceID == anchorTraceID {
			anchor = &traces[i]
			break
		}
	}
	if anchor == nil || len(anchor.Steps) == 0 {
		return map[string]int{}
	}
	if anchorStepIndex < 0 {
		anchorStepIndex = 0
	}
	if anchorStepIndex >= len(anchor.Steps) {
		anchorStepIndex = len(anchor.Steps) - 1
	}

	anchorElapsed := 0.0
	for i := 0; i <= anchorStepIndex; i++ {
		anchorElapsed += stepDuration(anchor.Steps[i])
	}

	targets := make(map[string]int, len(traces))
	for _, tr := range traces {
		if tr.TraceID == anchorTraceID || len(tr.Steps) == 0 {
			continue
		}
		targets[tr.TraceID] = nearestStep(tr.Steps, anchorElapsed)
	}
	return targets
}

// nearestStep returns the index whose cumulative elapsed time has the
// smallest absolute difference from target. Strict improvement keeps the
// earliest index on ties.
func nearestStep(steps []artifact.Step, target float64) int {
	best := 0
	bestDiff := math.Inf(1)
	elapsed := 0.0
	for i, s := range steps {
		elapsed += stepDuration(s)
		diff := math.Abs(elapsed - target)
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best
}

func stepDuration(s artifact.Step) float64 {
	if s.DurationMs > 0 {
		return s.DurationMs
	}
	return 0
}
