package lottie

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing for one Animation.SetFrame.
// Only populated when debug mode is on.
type frameStats struct {
	displayTime time.Duration
	syncTime    time.Duration
	publishTime time.Duration
	nodeCount   int
}

// debugLog prints timing and node stats to stderr.
func (a *Animation) debugLog(frame float64, stats frameStats) {
	if !a.debug {
		return
	}
	total := stats.displayTime + stats.syncTime + stats.publishTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[lottie] frame %.2f | display: %v | sync: %v | publish: %v | total: %v | nodes: %d\n",
		frame, stats.displayTime, stats.syncTime, stats.publishTime, total, stats.nodeCount)
}

// debugWarnf prints a warning about inert configuration when enabled.
func debugWarnf(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[lottie] warning: "+format+"\n", args...)
}

// debugCheckTreeDepth warns on stderr if a precomposition nests deeper than
// the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(enabled bool, root Layer) {
	if !enabled {
		return
	}
	if d := layerDepth(root); d > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[lottie] warning: layer tree depth %d exceeds %d (%q)\n",
			d, debugMaxTreeDepth, root.Name())
	}
}

// layerDepth returns the number of layers on the longest path from l to a leaf.
func layerDepth(l Layer) int {
	deepest := 0
	for _, c := range l.ChildKeypaths() {
		if d := layerDepth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
