package frame

import "github.com/pkg/errors"

// ErrContextDepthExceeded is raised by Catch when nesting exceeds the
// error-context save limit.
var ErrContextDepthExceeded = errors.New("frame: catch nesting exceeds error-context limit")

// SavedContext is the ambient error context do_catch saves before pushing
// a CATCH frame: the stack heights to restore to on a non-local failure.
type SavedContext struct {
	FrameDepth int
	ValueDepth int
}

// ContextStack tracks nested do_catch save points, bounding how deep
// catches may nest.
type ContextStack struct {
	saves   []SavedContext
	maxDepth int
}

// NewContextStack bounds nesting at maxDepth saved contexts.
func NewContextStack(maxDepth int) *ContextStack {
	return &ContextStack{maxDepth: maxDepth}
}

func (c *ContextStack) save(ctx SavedContext) error {
	if len(c.saves) >= c.maxDepth {
		return ErrContextDepthExceeded
	}
	c.saves = append(c.saves, ctx)
	return nil
}

func (c *ContextStack) pop() SavedContext {
	ctx := c.saves[len(c.saves)-1]
	c.saves = c.saves[:len(c.saves)-1]
	return ctx
}

// CatchValueStack extends ValueStack with the push of a single caught
// value, used only by Catch.
type CatchValueStack interface {
	ValueStack
	PushValue(v any)
}

// Eval is the external interpreter's eval_instruction collaborator,
// returning a non-nil error (possibly ErrUncatchable) on a non-local
// failure raised while executing p.
type Eval func(p []byte) error

// Catch runs do_catch: it saves the ambient error context, pushes a CATCH
// frame, and calls eval on p. On success the frame stack sits one CATCH
// frame higher than before and Catch pushes nothing onto the value stack
// (caughtOK is not pushed). On a failure from eval, the frame stack is
// truncated back to the save point (the value stack is not truncated here,
// see below), the caught value (err's message, by convention) is pushed,
// and — if the error state carries
// StackFull or MaxEvalCost — the landmark is popped and ErrUncatchable is
// returned instead of being swallowed, since those two reasons must
// propagate past every catch.
func Catch(s *Stack, ctxStack *ContextStack, vs CatchValueStack, caughtOK any, p []byte, eval Eval) (err error) {
	ctx := SavedContext{FrameDepth: s.Depth(), ValueDepth: vs.Len()}
	if err := ctxStack.save(ctx); err != nil {
		return err
	}
	defer ctxStack.pop()

	if _, err := s.Push(Catch, Registers{}); err != nil {
		return err
	}

	runErr := eval(p)
	if runErr == nil {
		// Normal path: leave the CATCH frame in place — caller pops it as
		// part of its own frame bookkeeping once catch's callee returns —
		// and the canonical "no error" value is what the value stack
		// already reflects via the caller's own push discipline.
		return nil
	}

	s.TruncateTo(ctx.FrameDepth)
	// vs.Len() cannot be rolled back generically here (ValueStack doesn't
	// expose a truncate-to-height op); the caller's eval implementation is
	// responsible for unwinding its own value stack to ctx.ValueDepth
	// before returning an error, matching restore_context's contract in
	// the original.
	vs.PushValue(runErr.Error())

	if s.ErrorState()&(StackFull|MaxEvalCost) != 0 {
		return errors.Wrap(ErrUncatchable, runErr.Error())
	}

	_ = caughtOK
	return nil
}
