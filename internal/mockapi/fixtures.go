package mockapi

import (
	"fmt"
	"time"

	"github.com/Makepad-fr/orderup/internal/model"
)

var (
	staff = []model.User{
		{ID: "u1", Name: "John Smith", Role: model.RoleAssociate, StoreID: "1"},
		{ID: "u2", Name: "Emma Wilson", Role: model.RoleAssociate, StoreID: "1"},
		{ID: "u3", Name: "Michael Brown", Role: model.RoleManager, StoreID: "1"},
		{ID: "u4", Name: "Sarah Johnson", Role: model.RoleAssociate, StoreID: "10"},
	}

	shirt = model.OrderItem{Name: "Flower Woven Shirt", SKU: "SKU:0007", UnitPrice: 45.51}
	bulb  = model.OrderItem{Name: "High Power CFL BULB", SKU: "808080", UnitPrice: 12.99}
)

func line(id string, base model.OrderItem, qty int, loc string) model.OrderItem {
	base.ID = id
	base.Quantity = qty
	base.Location = loc
	return base
}

// seedOrders builds the order book relative to now so date filters have
// something to match.
func seedOrders(now time.Time) []model.Order {
	sources := []string{"shopify", "shopify", "bigcommerce", "phone", "tapin2", "ecwid", "manual", "delivery"}
	statuses := []model.OrderStatus{
		model.OrderReady, model.OrderNew, model.OrderNew, model.OrderNew,
		model.OrderNew, model.OrderPicking, model.OrderNew, model.OrderReady,
	}
	customers := []string{"Unknown Customer", "Unknown Customer", "Unknown Customer", "Abhina P.", "Lisa Anderson", "David Lee", "Unknown Customer", "Emily Brown"}

	orders := make([]model.Order, 0, len(sources))
	for i := range sources {
		id := fmt.Sprintf("%d", i+1)
		items := []model.OrderItem{line(id+"-1", shirt, 2, "A-12")}
		if i%2 == 1 {
			items = append(items, line(id+"-2", bulb, 2, "C-03"))
		}
		var total float64
		for _, it := range items {
			total += it.UnitPrice * float64(it.Quantity)
		}
		created := now.Add(-time.Duration(i*20) * time.Hour)
		payment := "Paid"
		if i%3 == 2 {
			payment = "Unpaid"
		}
		tax := round2(total * 0.0975)
		orders = append(orders, model.Order{
			ID:            id,
			OrderNumber:   fmt.Sprintf("#1395269376223719%02d", 24+i),
			CustomerName:  customers[i],
			Items:         items,
			Status:        statuses[i],
			CreatedAt:     created.Format(time.RFC3339),
			TotalAmount:   round2(total + tax),
			Source:        sources[i],
			ExternalID:    fmt.Sprintf("%d", 1711+i),
			CustomerPhone: "7829047368",
			Type:          "Online",
			PaymentStatus: payment,
			Financials: &model.Financials{
				Subtotal: round2(total),
				Tax:      tax,
				Total:    round2(total + tax),
			},
			Processing: &model.Processing{Store: "Adidas", Employee: "John", Register: "Register 1"},
		})
	}
	return orders
}

type picklistSeed struct {
	name     string
	created  string
	picked   int
	total    int
	assignee int
	status   model.PicklistStatus
}

var picklistSeeds = []picklistSeed{
	{"PL-1234", "2023-09-15T09:00:00Z", 12, 20, 0, model.PicklistOpen},
	{"PL-1235", "2023-09-14T09:00:00Z", 15, 15, 3, model.PicklistCompleted},
	{"PL-1236", "2023-09-14T13:00:00Z", 8, 15, 2, model.PicklistInProgress},
	{"PL-1237", "2023-09-13T09:00:00Z", 20, 20, 1, model.PicklistCompleted},
	{"PL-1238", "2023-09-13T15:00:00Z", 5, 10, 0, model.PicklistOpen},
	{"PL-1239", "2023-09-12T09:00:00Z", 3, 8, 1, model.PicklistOpen},
}

// seedPicklists spreads each seed's counters over lines of two units.
func seedPicklists(orders []model.Order) []*model.PicklistDetails {
	out := make([]*model.PicklistDetails, 0, len(picklistSeeds))
	for i, s := range picklistSeeds {
		u := staff[s.assignee]
		d := &model.PicklistDetails{
			Picklist: model.Picklist{
				ID:         fmt.Sprintf("%d", i+1),
				Name:       s.name,
				AssignedTo: &u,
				Status:     s.status,
				CreatedAt:  s.created,
			},
		}
		left := s.picked
		for n := 0; n*2 < s.total; n++ {
			need := min(2, s.total-n*2)
			got := min(need, left)
			left -= got
			st := model.PickPending
			if got == need {
				st = model.PickPicked
			}
			d.Items = append(d.Items, model.PicklistItem{
				ID:     fmt.Sprintf("%d", n+1),
				Name:   bulb.Name,
				SKU:    bulb.SKU,
				Needed: need,
				Picked: got,
				Status: st,
			})
		}
		o := orders[i%len(orders)]
		d.Orders = []model.OrderRef{{ID: o.ID, OrderNumber: o.OrderNumber, CustomerName: o.CustomerName}}
		d.Picklist.Orders = []model.Order{o}
		recount(d)
		out = append(out, d)
	}
	return out
}

func seedLocations() []model.Location {
	return []model.Location{
		{ID: "1", Name: "Fly LLC", IDNumber: "1", Kind: model.LocationStore, Staff: staff[:3]},
		{ID: "10", Name: "Fly Yonkers", IDNumber: "10", Kind: model.LocationStore, Staff: staff[3:]},
		{ID: "11", Name: "Fly Yonkers Backroom", IDNumber: "11", Kind: model.LocationWarehouse, Staff: staff[3:]},
		{ID: "12", Name: "Fly Concord", IDNumber: "12", Kind: model.LocationWarehouse},
	}
}

func seedNotifications(now time.Time) []model.Notification {
	return []model.Notification{
		{ID: "n1", Title: "New order", Message: "Order #139526937622371925 is waiting", Type: model.NotifyOrder, CreatedAt: now.Format(time.RFC3339)},
		{ID: "n2", Title: "Picklist completed", Message: "PL-1235 was completed", Type: model.NotifyPicklist, Read: true, CreatedAt: now.Add(-time.Hour).Format(time.RFC3339)},
	}
}

// recount refreshes the derived counters of a picklist from its lines.
func recount(d *model.PicklistDetails) {
	var picked, total int
	for _, it := range d.Items {
		picked += it.Picked
		total += it.Needed
	}
	d.ItemsPicked, d.TotalItems = picked, total
	d.Progress = 0
	if total > 0 {
		d.Progress = picked * 100 / total
	}
}

func round2(f float64) float64 { return float64(int(f*100+0.5)) / 100 }
