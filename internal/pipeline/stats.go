package pipeline

import "time"

// RunStats tracks counters across one build run.
type RunStats struct {
	BuildID string

	// Loading.
	Files   int // discovered
	Loaded  int
	Skipped int // unparsable or not a mapping
	KO      int
	EN      int

	// Repairs.
	Suffixed    int
	Restored    int
	Synthesized int
	Overridden  int

	// Output.
	Pages         int
	AtlasFiles    int
	AtlasExcluded int
	Written       int
	Bytes         int64

	Elapsed time.Duration
}
