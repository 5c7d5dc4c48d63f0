package vm_test

import (
	"errors"
	"testing"

	"stackvm/pkg/vm"
)

func TestStackPushPop(t *testing.T) {
	s := vm.NewStack()
	s.Push(1)
	s.Push(2)
	s.Push(3)

	if s.Len() != 3 {
		t.Fatalf("Len: expected 3, got %d", s.Len())
	}

	for _, want := range []int64{3, 2, 1} {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop: unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Pop: expected %d, got %d", want, got)
		}
	}

	if _, err := s.Pop(); !errors.Is(err, vm.ErrStackUnderflow) {
		t.Errorf("Pop on empty: expected ErrStackUnderflow, got %v", err)
	}
}

func TestStackPeek(t *testing.T) {
	s := vm.NewStack(7)

	v, err := s.Peek()
	if err != nil {
		t.Fatalf("Peek: unexpected error: %v", err)
	}
	if v != 7 {
		t.Errorf("Peek: expected 7, got %d", v)
	}
	if s.Len() != 1 {
		t.Errorf("Peek must not pop: expected len 1, got %d", s.Len())
	}

	s = vm.NewStack()
	if _, err := s.Peek(); !errors.Is(err, vm.ErrStackUnderflow) {
		t.Errorf("Peek on empty: expected ErrStackUnderflow, got %v", err)
	}
}

func TestStackIndexedAccess(t *testing.T) {
	s := vm.NewStack(10, 20, 30)

	v, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if v != 20 {
		t.Errorf("Get(1): expected 20, got %d", v)
	}

	if err := s.Set(0, 99); err != nil {
		t.Fatalf("Set: unexpected error: %v", err)
	}
	if v, _ := s.Get(0); v != 99 {
		t.Errorf("Get(0) after Set: expected 99, got %d", v)
	}

	for _, i := range []int64{-1, 3} {
		if _, err := s.Get(i); !errors.Is(err, vm.ErrIndexOutOfRange) {
			t.Errorf("Get(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if err := s.Set(i, 0); !errors.Is(err, vm.ErrIndexOutOfRange) {
			t.Errorf("Set(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestStackValuesIsACopy(t *testing.T) {
	s := vm.NewStack(1, 2)

	vals := s.Values()
	vals[0] = 42

	if v, _ := s.Get(0); v != 1 {
		t.Errorf("Values must copy: stack mutated to %d", v)
	}
}
