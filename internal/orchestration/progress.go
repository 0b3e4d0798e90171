package orchestration

import "sync"

// ProgressUpdate reports the state of one run.
type ProgressUpdate struct {
	// Index identifies the run in the multiplier slice given to Execute.
	Index int
	// Name is the multiplier name.
	Name string
	// Value is 0 when the run starts and 1 when it finishes.
	Value float64
	// Err is set on the final update of a failed run.
	Err error
}

// ProgressAggregator tracks completion across concurrent runs. Both the CLI
// spinner and the TUI status line use it.
type ProgressAggregator struct {
	mu     sync.Mutex
	values []float64
	failed int
}

// NewProgressAggregator creates a new aggregator for the given number of
// runs. Returns nil if numRuns <= 0.
func NewProgressAggregator(numRuns int) *ProgressAggregator {
	if numRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{values: make([]float64, numRuns)}
}

// Update records one update and returns the average progress.
func (a *ProgressAggregator) Update(update ProgressUpdate) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if update.Index >= 0 && update.Index < len(a.values) {
		a.values[update.Index] = update.Value
	}
	if update.Err != nil {
		a.failed++
	}
	return a.averageLocked()
}

// Average returns the current average progress without updating.
func (a *ProgressAggregator) Average() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.averageLocked()
}

func (a *ProgressAggregator) averageLocked() float64 {
	sum := 0.0
	for _, v := range a.values {
		sum += v
	}
	return sum / float64(len(a.values))
}

// Done returns how many runs have finished and how many of those failed.
func (a *ProgressAggregator) Done() (finished, failed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, v := range a.values {
		if v >= 1 {
			finished++
		}
	}
	return finished, a.failed
}

// NumRuns returns the number of runs being tracked.
func (a *ProgressAggregator) NumRuns() int {
	return len(a.values)
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
