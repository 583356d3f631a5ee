package stats

// Recorder observes cache misses in an Arena. Implementations must be cheap;
// they are called on every list and stat evaluation.
type Recorder interface {
	// ListEvaluated is called after a list recomputed its total by visiting n modifiers.
	ListEvaluated(list string, policy Policy, n int)
	// StatEvaluated is called after a stat recomputed its total.
	StatEvaluated(stat string)
}

type nopRecorder struct{}

func (nopRecorder) ListEvaluated(string, Policy, int) {}
func (nopRecorder) StatEvaluated(string)              {}

// CountingRecorder tallies evaluations. It is not safe for concurrent use.
type CountingRecorder struct {
	Lists     int
	Stats     int
	Modifiers int
}

// ListEvaluated implements Recorder.
func (c *CountingRecorder) ListEvaluated(_ string, _ Policy, n int) {
	c.Lists++
	c.Modifiers += n
}

// StatEvaluated implements Recorder.
func (c *CountingRecorder) StatEvaluated(string) {
	c.Stats++
}

// Reset zeroes every counter.
func (c *CountingRecorder) Reset() {
	*c = CountingRecorder{}
}
