package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectAllAppliesToEveryOrder(t *testing.T) {
	s := NewSelection("1", "2", "3")
	s.Toggle("2")
	assert.Equal(t, []string{"2"}, s.IDs())

	s.SelectAll()
	assert.True(t, s.AllSelected())
	assert.Equal(t, []string{"1", "2", "3"}, s.IDs())

	s.SelectAll()
	assert.False(t, s.AllSelected())
	assert.Zero(t, s.Count())
	assert.Nil(t, s.IDs())
}

func TestToggleTwiceRestores(t *testing.T) {
	s := NewSelection("1", "2")
	s.Toggle("1")
	assert.True(t, s.Selected("1"))
	assert.Equal(t, 1, s.Count())
	s.Toggle("1")
	assert.False(t, s.Selected("1"))
	assert.Zero(t, s.Count())

	s.Toggle("nope")
	assert.Zero(t, s.Count())
}

func TestAddKeepsSelection(t *testing.T) {
	s := NewSelection("1")
	s.Toggle("1")
	s.Add("1", "2")
	assert.Equal(t, []string{"1"}, s.IDs())
	s.Toggle("2")
	assert.Equal(t, []string{"1", "2"}, s.IDs())

	s.Reset("3")
	assert.Zero(t, s.Count())
	assert.False(t, s.Selected("1"))
}

func TestRetainKeepsListedChecks(t *testing.T) {
	s := NewSelection("1", "2", "3")
	s.Toggle("1")
	s.Toggle("3")

	s.Retain("3", "2", "4")
	assert.Equal(t, []string{"3"}, s.IDs())
	assert.False(t, s.Selected("1"))
	assert.False(t, s.AllSelected())

	s.SelectAll()
	s.Retain("2", "3")
	assert.True(t, s.AllSelected())
	assert.Equal(t, []string{"2", "3"}, s.IDs())

	s.Retain("2", "3", "5")
	assert.False(t, s.AllSelected())
	assert.Equal(t, []string{"2", "3"}, s.IDs())
}
