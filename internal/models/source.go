package models

// Source tags where a reading came from so callers can tell measured data
// from estimates.
type Source string

const (
	SourceLive        Source = "live"        // fetched from an upstream feed
	SourceComputed    Source = "computed"    // pure calculation
	SourceHarmonic    Source = "harmonic"    // synthesized tide
	SourceApproximate Source = "approximate" // closed-form rise/set estimate
	SourceFallback    Source = "fallback"    // constant used when an upstream failed
)

// IsEstimate reports whether the reading is not backed by live or computed data.
func (s Source) IsEstimate() bool {
	return s == SourceApproximate || s == SourceFallback
}
