package vm

// Frame is one saved call frame. Call pushes a frame recording where to
// resume and the caller's frame offset; Ret pops it and restores both.
//
// The offset marks the base of the callee's frame: the stack length at the
// moment of the Call. GetArg/SetArg address caller-pushed arguments below it
// (offset - 1 - i). The instruction set has no automatic frame teardown; the
// caller and callee must balance their own pushes and pops, and an unbalanced
// program corrupts later indexed accesses rather than faulting.
type Frame struct {
	ReturnIP int   // instruction index to resume at after Ret
	Offset   int64 // frame offset to restore on Ret
}
