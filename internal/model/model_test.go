package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPicklistProgressPercent(t *testing.T) {
	assert.Equal(t, 60, Picklist{ItemsPicked: 12, TotalItems: 20}.ProgressPercent())
	assert.Equal(t, 100, Picklist{ItemsPicked: 15, TotalItems: 15}.ProgressPercent())
	assert.Equal(t, 42, Picklist{Progress: 42}.ProgressPercent())
}

func TestOrderItemCountAndStatus(t *testing.T) {
	o := Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, o.ItemCount())
	assert.True(t, OrderReady.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestDashboardUnreadAndPageHasMore(t *testing.T) {
	d := Dashboard{Notifications: []Notification{{Read: true}, {}, {}}}
	assert.Equal(t, 2, d.Unread())
	assert.True(t, Page[Order]{PageNo: 1, TotalPages: 2}.HasMore())
	assert.False(t, Page[Order]{PageNo: 2, TotalPages: 2}.HasMore())
}
