package model

// OrderStatus is the lifecycle stage of an order.
type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderAssigned  OrderStatus = "assigned"
	OrderPicking   OrderStatus = "picking"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// OrderStatuses lists every status in workflow order.
var OrderStatuses = []OrderStatus{OrderNew, OrderAssigned, OrderPicking, OrderReady, OrderCompleted}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is an incoming customer order.
// The fields after Source only come back from the details endpoint.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Status       OrderStatus `json:"status"`
	CreatedAt    string      `json:"createdAt"`
	PickupTime   string      `json:"pickupTime,omitempty"`
	TotalAmount  float64     `json:"totalAmount"`
	Source       string      `json:"source"`

	ExternalID    string      `json:"externalId,omitempty"`
	CustomerPhone string      `json:"customerNumber,omitempty"`
	Type          string      `json:"type,omitempty"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	Financials    *Financials `json:"financialSummary,omitempty"`
	Processing    *Processing `json:"processingInfo,omitempty"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Location  string  `json:"location,omitempty"`
	Picked    bool    `json:"picked,omitempty"`
	SKU       string  `json:"sku,omitempty"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
}

type Financials struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Fees          float64 `json:"fees"`
	Customization float64 `json:"customization"`
	Total         float64 `json:"totalAmount"`
}

// Processing records where the order was taken.
type Processing struct {
	Store    string `json:"store"`
	Employee string `json:"employee"`
	Register string `json:"register"`
}

// ItemCount sums the quantities of all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// OrderRef is the short order form embedded in picklist details.
type OrderRef struct {
	ID           string `json:"id"`
	OrderNumber  string `json:"orderNumber"`
	CustomerName string `json:"customerName"`
}
