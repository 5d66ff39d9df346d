package workflow

import (
	"slices"
	"strings"
	"time"

	"github.com/Makepad-fr/orderup/internal/api"
	"github.com/Makepad-fr/orderup/internal/model"
)

const All = "all"

const (
	RangeAll       = "all"
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeThisMonth = "thisMonth"
	RangeLastMonth = "lastMonth"
	RangeCustom    = "custom"
)

// DateLayout is the wire format of dateFrom and dateTo.
const DateLayout = "2006-01-02"

type Option struct {
	Label string
	Value string
}

var DateRangeOptions = []Option{
	{"All Time", RangeAll},
	{"Today", RangeToday},
	{"Yesterday", RangeYesterday},
	{"This Month", RangeThisMonth},
	{"Last Month", RangeLastMonth},
	{"Custom", RangeCustom},
}

var OrderSourceOptions = []Option{
	{"All", All},
	{"Shopify", "shopify"},
	{"TapIn2", "tapin2"},
	{"Breakaway", "breakaway"},
	{"BigCommerce", "bigcommerce"},
	{"Ecwid", "ecwid"},
	{"Phone Order", "phone"},
	{"Delivery", "delivery"},
	{"Bar Tab", "bartab"},
	{"TIKT", "tikt"},
	{"Table", "table"},
	{"Other", "other"},
	{"Manual", "manual"},
	{"FanVista", "fanvista"},
	{"QSR", "qsr"},
}

var PaymentStatusOptions = []Option{
	{"All", All},
	{"Paid", "paid"},
	{"Unpaid", "unpaid"},
}

// FilterState is what the filter modal edits. CustomFrom and CustomTo are
// only read for the custom range.
type FilterState struct {
	DateRange     string
	OrderSources  []string
	PaymentStatus []string
	CustomFrom    string
	CustomTo      string
}

func DefaultFilters() FilterState {
	return FilterState{DateRange: RangeAll, OrderSources: []string{All}, PaymentStatus: []string{All}}
}

func (f *FilterState) ToggleSource(v string)  { f.OrderSources = toggleMulti(f.OrderSources, v) }
func (f *FilterState) TogglePayment(v string) { f.PaymentStatus = toggleMulti(f.PaymentStatus, v) }

func (f *FilterState) Clear() { *f = DefaultFilters() }

// Active reports whether anything differs from the defaults.
func (f FilterState) Active() bool {
	return f.DateRange != RangeAll || !isAll(f.OrderSources) || !isAll(f.PaymentStatus)
}

// toggleMulti picks "all" exclusively; a specific value drops "all" and
// flips itself. An emptied list goes back to "all".
func toggleMulti(cur []string, v string) []string {
	if v == All {
		return []string{All}
	}
	out := slices.DeleteFunc(slices.Clone(cur), func(s string) bool { return s == All })
	if i := slices.Index(out, v); i >= 0 {
		out = slices.Delete(out, i, i+1)
	} else {
		out = append(out, v)
	}
	if len(out) == 0 {
		return []string{All}
	}
	return out
}

func isAll(vs []string) bool { return len(vs) == 0 || slices.Contains(vs, All) }

// OrdersFilters turns the modal state into list query parameters, resolving
// relative date ranges against now.
func (f FilterState) OrdersFilters(now time.Time) api.OrdersFilters {
	var out api.OrdersFilters
	from, to := f.dateBounds(now)
	if !from.IsZero() {
		out.DateFrom = from.Format(DateLayout)
	}
	if !to.IsZero() {
		out.DateTo = to.Format(DateLayout)
	}
	if f.DateRange == RangeCustom {
		out.DateFrom, out.DateTo = strings.TrimSpace(f.CustomFrom), strings.TrimSpace(f.CustomTo)
	}
	if !isAll(f.OrderSources) {
		out.Source = strings.Join(f.OrderSources, ",")
	}
	return out
}

func (f FilterState) dateBounds(now time.Time) (from, to time.Time) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch f.DateRange {
	case RangeToday:
		return today, today
	case RangeYesterday:
		yd := today.AddDate(0, 0, -1)
		return yd, yd
	case RangeThisMonth:
		first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, -1)
	case RangeLastMonth:
		first := time.Date(y, m-1, 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, -1)
	}
	return time.Time{}, time.Time{}
}

// MatchPayment applies the payment filter, which the list endpoint does not
// take. Orders without a payment status always match.
func (f FilterState) MatchPayment(o model.Order) bool {
	if isAll(f.PaymentStatus) || o.PaymentStatus == "" {
		return true
	}
	return slices.Contains(f.PaymentStatus, strings.ToLower(o.PaymentStatus))
}

// OrderTab is one of the tabs above the order list.
type OrderTab int

const (
	TabAll OrderTab = iota
	TabInitiated
	TabProcessing
)

var OrderTabs = []OrderTab{TabAll, TabInitiated, TabProcessing}

func (t OrderTab) String() string {
	switch t {
	case TabInitiated:
		return "Initiated"
	case TabProcessing:
		return "Processing"
	}
	return "All"
}

// Status is the status filter of the tab; empty for All.
func (t OrderTab) Status() model.OrderStatus {
	switch t {
	case TabInitiated:
		return model.OrderNew
	case TabProcessing:
		return model.OrderPicking
	}
	return ""
}

func (t OrderTab) Next() OrderTab { return OrderTabs[(int(t)+1)%len(OrderTabs)] }
