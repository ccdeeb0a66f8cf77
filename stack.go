package ofxtree

// TagStack is a stack of tag names.
type TagStack interface {
	Push(string)
	Pop() (string, bool)
	Peek() (string, bool)
	IsEmpty() bool
	Size() int
	Dump() []string
}

// stack is a slice backed stack of tag names.
type stack struct {
	items []string
}

// NewStack returns an initialized empty stack.
func NewStack() TagStack {
	return &stack{
		items: make([]string, 0),
	}
}

// Push adds the given name to top of stack.
func (s *stack) Push(name string) {
	s.items = append(s.items, name)
}

// Pop removes and returns the topmost name of the stack.
// Popping an empty stack is a no-op that reports false.
func (s *stack) Pop() (string, bool) {
	l := len(s.items)
	if l == 0 {
		return "", false
	}
	name := s.items[l-1]
	s.items = s.items[:l-1]
	return name, true
}

// Peek returns the topmost name without removing it.
func (s *stack) Peek() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[len(s.items)-1], true
}

// IsEmpty returns true if the stack is empty, else false.
func (s *stack) IsEmpty() bool {
	return len(s.items) == 0
}

// Size returns the current size of the stack.
func (s *stack) Size() int {
	return len(s.items)
}

// Dump returns a copy of the stack contents, bottom first, for debugging.
func (s *stack) Dump() []string {
	result := make([]string, len(s.items))
	copy(result, s.items)
	return result
}
