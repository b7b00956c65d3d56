// Package orchestration runs several root-finding methods concurrently on
// the same problem and analyzes their results for comparison. It decouples
// the engine from presentation via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
