package model

type PicklistStatus string

const (
	PicklistOpen       PicklistStatus = "open"
	PicklistInProgress PicklistStatus = "in_progress"
	PicklistCompleted  PicklistStatus = "completed"
)

// Picklist groups orders assigned to one staff member for retrieval.
type Picklist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Orders      []Order        `json:"orders"`
	AssignedTo  *User          `json:"assignedTo,omitempty"`
	Status      PicklistStatus `json:"status"`
	Progress    int            `json:"progress"`
	CreatedAt   string         `json:"createdAt"`
	ItemsPicked int            `json:"itemsPicked"`
	TotalItems  int            `json:"totalItems"`
}

// ProgressPercent derives progress from the picked counters, falling back to
// the server-reported value when there is nothing to count.
func (p Picklist) ProgressPercent() int {
	if p.TotalItems <= 0 {
		return p.Progress
	}
	return p.ItemsPicked * 100 / p.TotalItems
}

func (p Picklist) Assignee() string {
	if p.AssignedTo == nil {
		return "unassigned"
	}
	return p.AssignedTo.Name
}

type PickStatus string

const (
	PickPending PickStatus = "pending"
	PickPicked  PickStatus = "picked"
)

// PicklistItem is one line to pick: Needed units, Picked so far.
type PicklistItem struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	SKU       string     `json:"sku"`
	Available int        `json:"available"`
	QOH       int        `json:"qoh"`
	Needed    int        `json:"needed"`
	Picked    int        `json:"picked"`
	Status    PickStatus `json:"status"`
}

// PicklistDetails is the full picklist as returned by the details endpoint.
type PicklistDetails struct {
	Picklist
	Items  []PicklistItem `json:"items"`
	Orders []OrderRef     `json:"orders"`
}

// LocationKind separates sales floors from back rooms.
type LocationKind string

const (
	LocationStore     LocationKind = "store"
	LocationWarehouse LocationKind = "warehouse"
)

type Location struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	IDNumber string       `json:"idNumber"`
	Kind     LocationKind `json:"kind"`
	Staff    []User       `json:"staff,omitempty"`
}

// PackingOrder is an order waiting to be boxed after picking.
type PackingOrder struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Status      string      `json:"status"`
	Customer    string      `json:"customer"`
	Location    string      `json:"location"`
	ExternalID  string      `json:"externalId"`
	Source      string      `json:"source"`
	Date        string      `json:"date"`
	Total       float64     `json:"total"`
	Items       []OrderItem `json:"items"`
	MoreItems   int         `json:"moreItems"`
}
