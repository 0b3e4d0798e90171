// Package orchestration coordinates the concurrent evaluation of one integer
// operation under several multiplication strategies and aggregates the
// results for comparison. It decouples business logic from presentation via
// the ProgressReporter and ResultPresenter interfaces.
package orchestration
