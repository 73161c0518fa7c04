package scope

import (
	"testing"

	"tinygo.org/x/go-llvm"
)

func TestDefineAndLookupWithinFrame(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	ty := ctx.DoubleType()

	s := NewStack()
	s.Push(NewFrame(Main))
	addr := llvm.Value{}
	s.Define("a", addr, ty)

	binding, ok := s.Lookup("a")
	if !ok {
		t.Fatal("expected binding to be found")
	}
	if binding.Type != ty {
		t.Fatal("binding type mismatch")
	}
}

func TestLookupWalksDownThroughOuterFrames(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	ty := ctx.DoubleType()

	s := NewStack()
	s.Push(NewFrame(Main))
	s.Define("outer", llvm.Value{}, ty)
	s.Push(NewFrame(If))

	if _, ok := s.Lookup("outer"); !ok {
		t.Fatal("expected an inner frame to see an outer binding")
	}
}

func TestLookupDoesNotSeeSiblingFrameBindings(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	ty := ctx.DoubleType()

	s := NewStack()
	s.Push(NewFrame(Main))
	s.Push(NewFrame(If))
	s.Define("inner", llvm.Value{}, ty)
	s.Pop()
	s.Push(NewFrame(If))

	if _, ok := s.Lookup("inner"); ok {
		t.Fatal("a popped sibling frame's bindings should not be visible")
	}
}

func TestNearestWhileSkipsIntermediateFrames(t *testing.T) {
	s := NewStack()
	s.Push(NewFrame(Main))
	whileFrame := NewFrame(While)
	s.Push(whileFrame)
	s.Push(NewFrame(If))

	got, ok := s.NearestWhile()
	if !ok || got != whileFrame {
		t.Fatalf("expected to find the enclosing While frame through an If frame, got %v %v", got, ok)
	}
}

func TestNearestWhileReturnsFalseOutsideAnyLoop(t *testing.T) {
	s := NewStack()
	s.Push(NewFrame(Main))
	s.Push(NewFrame(If))

	if _, ok := s.NearestWhile(); ok {
		t.Fatal("expected no enclosing While frame")
	}
}

func TestNearestFunctionSkipsIntermediateFrames(t *testing.T) {
	s := NewStack()
	s.Push(NewFrame(Main))
	fnFrame := NewFrame(Function)
	s.Push(fnFrame)
	s.Push(NewFrame(While))

	got, ok := s.NearestFunction()
	if !ok || got != fnFrame {
		t.Fatalf("expected to find the enclosing Function frame through a While frame, got %v %v", got, ok)
	}
}
