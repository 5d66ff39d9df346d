package workflow

import (
	"fmt"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/model"
)

// PickSheet is the local copy of a picklist's lines while picking.
type PickSheet struct {
	Items []model.PicklistItem
}

func NewPickSheet(items []model.PicklistItem) *PickSheet {
	return &PickSheet{Items: append([]model.PicklistItem(nil), items...)}
}

func (s *PickSheet) find(id string) (*model.PicklistItem, error) {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i], nil
		}
	}
	return nil, fmt.Errorf("item %q not on picklist", id)
}

// Pick marks the whole needed quantity as picked.
func (s *PickSheet) Pick(id string) (model.PicklistItem, error) {
	it, err := s.find(id)
	if err != nil {
		return model.PicklistItem{}, err
	}
	setPicked(it, it.Needed)
	return *it, nil
}

// Adjust moves the picked quantity by delta, clamped to [0, needed].
func (s *PickSheet) Adjust(id string, delta int) (model.PicklistItem, error) {
	it, err := s.find(id)
	if err != nil {
		return model.PicklistItem{}, err
	}
	setPicked(it, it.Picked+delta)
	return *it, nil
}

func setPicked(it *model.PicklistItem, n int) {
	it.Picked = max(0, min(n, it.Needed))
	it.Status = model.PickPending
	if it.Picked == it.Needed {
		it.Status = model.PickPicked
	}
}

func (s *PickSheet) MarkAll() {
	for i := range s.Items {
		setPicked(&s.Items[i], s.Items[i].Needed)
	}
}

// Totals sums needed and picked units over all lines.
func (s *PickSheet) Totals() (needed, picked int) {
	for _, it := range s.Items {
		needed += it.Needed
		picked += it.Picked
	}
	return
}

// Progress is picked/needed in percent; 0 for an empty sheet.
func (s *PickSheet) Progress() int {
	n, p := s.Totals()
	if n == 0 {
		return 0
	}
	return p * 100 / n
}

// Done reports whether every line is fully picked.
func (s *PickSheet) Done() bool {
	for _, it := range s.Items {
		if it.Status != model.PickPicked {
			return false
		}
	}
	return len(s.Items) > 0
}

// LocationPick is the location screen's form. Kind narrows the list to
// stores or warehouses; the zero kind shows every location.
type LocationPick struct {
	Locations []model.Location
	kind      model.LocationKind
	selected  int // index into Visible
	assignee  string
}

// NewLocationPick preselects the first location.
func NewLocationPick(locs []model.Location) *LocationPick {
	return &LocationPick{Locations: locs}
}

// Visible is the locations of the current kind.
func (l *LocationPick) Visible() []model.Location {
	if l.kind == "" {
		return l.Locations
	}
	var out []model.Location
	for _, loc := range l.Locations {
		if loc.Kind == l.kind {
			out = append(out, loc)
		}
	}
	return out
}

func (l *LocationPick) Kind() model.LocationKind { return l.kind }

// SetKind switches the list to kind and selects its first location.
func (l *LocationPick) SetKind(kind model.LocationKind) {
	l.kind, l.selected, l.assignee = kind, 0, ""
}

func (l *LocationPick) Location() (model.Location, bool) {
	vis := l.Visible()
	if len(vis) == 0 {
		return model.Location{}, false
	}
	return vis[l.selected], true
}

// Select chooses a location by ID, switching the kind to the location's
// when a kind is set, and clears the assignee, whose list depends on the
// location.
func (l *LocationPick) Select(id string) error {
	for _, loc := range l.Locations {
		if loc.ID != id {
			continue
		}
		if l.kind != "" {
			l.kind = loc.Kind
		}
		for i, v := range l.Visible() {
			if v.ID == id {
				l.selected, l.assignee = i, ""
			}
		}
		return nil
	}
	return fmt.Errorf("unknown location %q", id)
}

// Move shifts the selection by delta, wrapping around.
func (l *LocationPick) Move(delta int) {
	if n := len(l.Visible()); n > 0 {
		l.selected = ((l.selected+delta)%n + n) % n
		l.assignee = ""
	}
}

// Assign sets the assignee from the selected location's staff; "" unassigns.
func (l *LocationPick) Assign(userID string) error {
	if userID == "" {
		l.assignee = ""
		return nil
	}
	loc, ok := l.Location()
	if ok {
		for _, u := range loc.Staff {
			if u.ID == userID {
				l.assignee = userID
				return nil
			}
		}
	}
	return fmt.Errorf("user %q does not work at this location", userID)
}

func (l *LocationPick) Assignee() string { return l.assignee }

// Request builds the create-picklist call for orderIDs.
func (l *LocationPick) Request(orderIDs []string) (api.CreatePicklistRequest, error) {
	if len(orderIDs) == 0 {
		return api.CreatePicklistRequest{}, fmt.Errorf("no orders selected")
	}
	req := api.CreatePicklistRequest{OrderIDs: orderIDs, AssignedTo: l.assignee}
	if loc, ok := l.Location(); ok {
		req.LocationID = loc.ID
	}
	return req, nil
}
