package frame

// ValueStack is the slice of the external Interpreter's value-stack
// vocabulary (section 6) that argument normalization and catch frames
// need: popping actuals, pushing undefined padding, and aggregating
// trailing varargs into a freshly allocated array.
type ValueStack interface {
	Len() int
	// PopLast removes and returns the last n pushed values, oldest first.
	PopLast(n int) []any
	PushUndefineds(n int)
	// PushArray pushes one value: a newly allocated array built from
	// items (already in the varargs' intended order).
	PushArray(items []any)
}

// NormalizeStrict implements the non-varargs calling convention (4.10):
// if more actuals were pushed than the function declares formals, the
// excess is popped; the exact right number of undefined locals/padding
// formals is pushed either way. Returns the recorded
// num_local_variables = numLocal + numArg.
func NormalizeStrict(vs ValueStack, numArg, numLocal int) int {
	actual := vs.Len()
	if tmp := actual - numArg; tmp > 0 {
		vs.PopLast(tmp)
		vs.PushUndefineds(numLocal)
	} else {
		vs.PushUndefineds(numLocal - tmp)
	}
	return numLocal + numArg
}

// NormalizeVarargs implements the true-varargs calling convention (4.10):
// once there are at least numArg-1 actuals available, the trailing run is
// aggregated into a newly allocated array pushed as the last formal;
// otherwise undefined padding plus a canonical empty array fill the gap.
// Locals are then pushed on top either way. Returns the recorded
// num_local_variables = numLocal + numArg.
func NormalizeVarargs(vs ValueStack, numArg, numLocal int) int {
	actual := vs.Len()
	if actual >= numArg {
		n := actual - numArg + 1
		items := vs.PopLast(n)
		vs.PushArray(items)
	} else {
		vs.PushUndefineds(numArg - 1 - actual)
		vs.PushArray(nil)
	}
	vs.PushUndefineds(numLocal)
	return numLocal + numArg
}
