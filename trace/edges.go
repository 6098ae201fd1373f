package trace

// Edges reduces an ordered sample sequence to the ordered subsequence of
// level transitions on either channel. The first sample only establishes the
// baseline levels and never produces an edge.
//
// When both channels change at the same sample, the clock edge is emitted
// before the data edge. This tie-break is deliberate: clock-driven framing
// must be evaluated before a data transition can be classified as START/STOP
// versus an ordinary bit change. Callers relying on a different ordering for
// simultaneous transitions must reorder the result themselves.
//
// Edges is a pure function: calling it again on the same input yields an
// identical sequence.
func Edges(samples []Sample) []Edge {
	if len(samples) < 2 {
		return nil
	}

	edges := make([]Edge, 0, len(samples))
	prev := samples[0]
	for _, s := range samples[1:] {
		if s.SCL != prev.SCL {
			edges = append(edges, Edge{Time: s.Time, Channel: Clock, Rising: s.SCL})
		}
		if s.SDA != prev.SDA {
			edges = append(edges, Edge{Time: s.Time, Channel: Data, Rising: s.SDA})
		}
		prev = s
	}
	return edges
}
