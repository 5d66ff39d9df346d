package model

type DashboardStats struct {
	TotalOrders    int `json:"totalOrders"`
	TotalPicklists int `json:"totalPicklists"`
	CompletedToday int `json:"completedToday"`
}

// Dashboard is the landing summary for a store.
type Dashboard struct {
	NewOrders       []Order        `json:"newOrders"`
	ActivePicklists []Picklist     `json:"activePicklists"`
	ReadyOrders     []Order        `json:"readyOrders"`
	Stats           DashboardStats `json:"stats"`
	Notifications   []Notification `json:"notifications,omitempty"`
}

// Unread counts notifications not yet read.
func (d Dashboard) Unread() int {
	n := 0
	for _, x := range d.Notifications {
		if !x.Read {
			n++
		}
	}
	return n
}

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	TotalRecords int     `json:"totalRecords"`
	TotalPages   int     `json:"totalPages"`
	PageNo       int     `json:"pageNo"`
	NextPageURL  *string `json:"nextPageURL"`
	Data         []T     `json:"data"`
}

// HasMore reports whether a later page exists.
func (p Page[T]) HasMore() bool { return p.PageNo < p.TotalPages }
