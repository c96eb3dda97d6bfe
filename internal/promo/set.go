package promo

// Set holds one loaded code list. It is populated during loading and
// read-only afterwards, so lookups need no locking.
type Set struct {
	codes map[string]struct{}
}

// NewSet creates a set sized for roughly capacity codes.
func NewSet(capacity int) *Set {
	return &Set{codes: make(map[string]struct{}, capacity)}
}

// Add inserts a code into the set.
func (s *Set) Add(code string) {
	s.codes[code] = struct{}{}
}

// Contains reports whether the code is in the set.
func (s *Set) Contains(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Size returns the number of codes loaded.
func (s *Set) Size() int {
	return len(s.codes)
}
