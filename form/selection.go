package form

// Selection is the record currently loaded into the form. It is set by a
// successful find and cleared by delete, restore and save.
type Selection struct {
	index int
	ok    bool
}

func (s *Selection) Select(index int) {
	s.index = index
	s.ok = true
}

func (s *Selection) Clear() {
	*s = Selection{}
}

func (s Selection) Index() (int, bool) {
	return s.index, s.ok
}
