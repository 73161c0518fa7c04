// Package scope implements the code generator's lexical scope stack: a
// stack of frames, each tagged with the control construct that opened it
// and holding its own name-to-address bindings.
package scope

import "tinygo.org/x/go-llvm"

// Kind tags why a frame was pushed, which in turn says which of its basic
// block fields are meaningful.
type Kind int

const (
	// Main is the single frame wrapping the program's entry function.
	Main Kind = iota
	// Function wraps a user-defined function body.
	Function
	// If wraps one branch (then or else) of a conditional.
	If
	// While wraps a loop body.
	While
)

// Binding is a declared variable's stack address together with the type it
// was allocated with, since an opaque llvm.Value pointer carries no
// pointee-type information of its own.
type Binding struct {
	Addr llvm.Value
	Type llvm.Type
}

// Frame is one level of the scope stack. Continuation is meaningful for If
// and While frames; Body and Evaluation are meaningful only for While
// frames. In a While frame, break branches to Continuation and continue
// branches to Evaluation.
type Frame struct {
	kind         Kind
	bindings     map[string]Binding
	Continuation llvm.BasicBlock
	Body         llvm.BasicBlock
	Evaluation   llvm.BasicBlock
}

// NewFrame constructs a frame of the given kind with an empty binding
// table.
func NewFrame(kind Kind) *Frame {
	return &Frame{kind: kind, bindings: make(map[string]Binding)}
}

// FrameKind reports the frame's kind.
func (f *Frame) FrameKind() Kind { return f.kind }

// Define binds name to a stack address in this frame only.
func (f *Frame) Define(name string, addr llvm.Value, ty llvm.Type) {
	f.bindings[name] = Binding{Addr: addr, Type: ty}
}

// Lookup resolves name within this frame only.
func (f *Frame) Lookup(name string) (Binding, bool) {
	b, ok := f.bindings[name]
	return b, ok
}

// Stack is the full scope stack. Insertion always targets the top frame;
// lookup walks from the top down.
type Stack struct {
	frames []*Frame
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push adds a new frame to the top of the stack.
func (s *Stack) Push(f *Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the top frame. It panics if the stack is empty;
// callers must balance every Push with a Pop.
func (s *Stack) Pop() *Frame {
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Top returns the current top frame.
func (s *Stack) Top() *Frame {
	return s.frames[len(s.frames)-1]
}

// Define binds name to addr in the top frame.
func (s *Stack) Define(name string, addr llvm.Value, ty llvm.Type) {
	s.Top().Define(name, addr, ty)
}

// Lookup walks the stack top-down, returning the first binding found.
func (s *Stack) Lookup(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].Lookup(name); ok {
			return b, true
		}
	}
	return Binding{}, false
}

// NearestWhile returns the innermost enclosing While frame, if any.
func (s *Stack) NearestWhile() (*Frame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == While {
			return s.frames[i], true
		}
	}
	return nil, false
}

// NearestFunction returns the innermost enclosing Function frame, if any.
func (s *Stack) NearestFunction() (*Frame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == Function {
			return s.frames[i], true
		}
	}
	return nil, false
}
