package utils

// StringSet is a set of unique strings.
type StringSet struct {
	m map[string]struct{}
}

func NewStringSet(strings ...string) *StringSet {
	res := &StringSet{
		m: map[string]struct{}{},
	}
	for _, s := range strings {
		res.Add(s)
	}
	return res
}

// Add adds a string to the set. If string is already in the set, it has no effect.
func (s *StringSet) Add(str string) {
	s.m[str] = struct{}{}
}

func (s *StringSet) AddAll(strings ...string) {
	for _, str := range strings {
		s.Add(str)
	}
}

func (s *StringSet) Contains(str string) bool {
	_, ok := s.m[str]
	return ok
}

func (s *StringSet) IsEmpty() bool {
	return len(s.m) == 0
}

func (s *StringSet) TotalStrings() int {
	return len(s.m)
}

// ToSlice returns the strings in the set, in no particular order.
func (s *StringSet) ToSlice() []string {
	if s.IsEmpty() {
		return nil
	}
	res := make([]string, 0, len(s.m))
	for str := range s.m {
		res = append(res, str)
	}
	return res
}
