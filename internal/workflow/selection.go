// Package workflow holds the state behind the fulfilment screens: order
// selection, list filters, picking and packing.
package workflow

// Selection tracks which orders of a list are checked.
type Selection struct {
	order    []string
	selected map[string]bool
	all      bool
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{selected: map[string]bool{}}
	s.Add(ids...)
	return s
}

// Add appends orders unchecked. Known ids are ignored.
func (s *Selection) Add(ids ...string) {
	for _, id := range ids {
		if _, ok := s.selected[id]; ok {
			continue
		}
		s.order = append(s.order, id)
		s.selected[id] = false
	}
}

// Reset replaces the orders and clears every check.
func (s *Selection) Reset(ids ...string) {
	s.order, s.selected, s.all = nil, map[string]bool{}, false
	s.Add(ids...)
}

// Retain replaces the orders like Reset but keeps the checks of orders that
// are still listed. Select-all survives only if every order stays checked.
func (s *Selection) Retain(ids ...string) {
	prev := s.selected
	s.order, s.selected = nil, map[string]bool{}
	s.Add(ids...)
	for _, id := range s.order {
		s.selected[id] = prev[id]
		s.all = s.all && prev[id]
	}
	s.all = s.all && len(s.order) > 0
}

// SelectAll flips the select-all flag and applies it to every order.
func (s *Selection) SelectAll() {
	s.all = !s.all
	for _, id := range s.order {
		s.selected[id] = s.all
	}
}

func (s *Selection) AllSelected() bool { return s.all }

// Toggle flips one order. Unknown ids are ignored.
func (s *Selection) Toggle(id string) {
	if v, ok := s.selected[id]; ok {
		s.selected[id] = !v
	}
}

func (s *Selection) Selected(id string) bool { return s.selected[id] }

func (s *Selection) Count() int {
	n := 0
	for _, v := range s.selected {
		if v {
			n++
		}
	}
	return n
}

// IDs returns the checked orders in list order.
func (s *Selection) IDs() []string {
	var out []string
	for _, id := range s.order {
		if s.selected[id] {
			out = append(out, id)
		}
	}
	return out
}
