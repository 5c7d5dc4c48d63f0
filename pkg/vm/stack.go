package vm

// Stack is the operand stack: a growable sequence of signed integers,
// manipulated by push/pop at the end and by indexed read/write. Indexed
// access must target an existing element; out-of-range access is an error,
// never a silent zero.
type Stack struct {
	a []int64
}

// NewStack creates a new stack instance
func NewStack(elm ...int64) *Stack {
	stack := Stack{
		a: make([]int64, 0, 8),
	}
	stack.a = append(stack.a, elm...)

	return &stack
}

// Push adds an element to the top of the stack
func (s *Stack) Push(v int64) {
	s.a = append(s.a, v)
}

// Pop removes and returns the top element of the stack
func (s *Stack) Pop() (int64, error) {
	if len(s.a) == 0 {
		return 0, ErrStackUnderflow
	}

	v := s.a[len(s.a)-1]
	s.a = s.a[:len(s.a)-1]

	return v, nil
}

// Peek returns the top element of the stack without removing it
func (s *Stack) Peek() (int64, error) {
	if len(s.a) == 0 {
		return 0, ErrStackUnderflow
	}

	return s.a[len(s.a)-1], nil
}

// Get returns the element at index i, counted from the stack bottom
func (s *Stack) Get(i int64) (int64, error) {
	if i < 0 || i >= int64(len(s.a)) {
		return 0, ErrIndexOutOfRange
	}

	return s.a[i], nil
}

// Set overwrites the element at index i, counted from the stack bottom
func (s *Stack) Set(i, v int64) error {
	if i < 0 || i >= int64(len(s.a)) {
		return ErrIndexOutOfRange
	}

	s.a[i] = v
	return nil
}

// Len returns the number of elements on the stack
func (s *Stack) Len() int {
	return len(s.a)
}

// Values returns a copy of the stack contents, bottom first
func (s *Stack) Values() []int64 {
	return append([]int64(nil), s.a...)
}
