package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	s := NewState()

	assert.True(t, s.Add("ABC-1"))
	assert.True(t, s.Add("ABC-2"))
	assert.Equal(t, []string{"ABC-1", "ABC-2"}, s.Keys())

	// Re-adding is a no-op that signals no change.
	assert.False(t, s.Add("ABC-1"))
	assert.Equal(t, []string{"ABC-1", "ABC-2"}, s.Keys())
	assert.Equal(t, 2, s.Len())
}

func TestSyncViewAddsCheckedKeys(t *testing.T) {
	s := NewState()

	changed := s.SyncView([]string{"ABC-1", "ABC-2", "ABC-3"}, []string{"ABC-1", "ABC-3"})

	assert.True(t, changed)
	assert.Equal(t, []string{"ABC-1", "ABC-3"}, s.Keys())
}

func TestSyncViewRemovesUncheckedVisibleKeys(t *testing.T) {
	s := NewState()
	s.Add("ABC-1")
	s.Add("ABC-2")

	changed := s.SyncView([]string{"ABC-1", "ABC-2"}, []string{"ABC-2"})

	assert.True(t, changed)
	assert.Equal(t, []string{"ABC-2"}, s.Keys())
}

func TestSyncViewLeavesKeysOutsideViewUntouched(t *testing.T) {
	s := NewState()
	s.Add("OTHER-9")
	s.Add("ABC-1")

	// OTHER-9 is not visible in this view, so unchecking everything here
	// must not remove it.
	changed := s.SyncView([]string{"ABC-1", "ABC-2"}, nil)

	assert.True(t, changed)
	assert.Equal(t, []string{"OTHER-9"}, s.Keys())
}

func TestSyncViewNoChange(t *testing.T) {
	s := NewState()
	s.Add("ABC-1")

	changed := s.SyncView([]string{"ABC-1", "ABC-2"}, []string{"ABC-1"})

	assert.False(t, changed)
	assert.Equal(t, []string{"ABC-1"}, s.Keys())
}

func TestSyncViewPreservesInsertionOrder(t *testing.T) {
	s := NewState()
	s.SyncView([]string{"A-1", "A-2"}, []string{"A-1", "A-2"})
	s.SyncView([]string{"B-1"}, []string{"B-1"})

	// Removing the middle key keeps the relative order of the rest.
	s.SyncView([]string{"A-2"}, nil)
	assert.Equal(t, []string{"A-1", "B-1"}, s.Keys())

	// A removed key re-added later goes to the end.
	s.SyncView([]string{"A-2"}, []string{"A-2"})
	assert.Equal(t, []string{"A-1", "B-1", "A-2"}, s.Keys())
}

func TestReview(t *testing.T) {
	s := NewState()
	s.Add("ABC-1")
	s.Add("ABC-2")
	s.Add("ABC-3")

	changed := s.Review([]string{"ABC-1", "ABC-3"})

	assert.True(t, changed)
	assert.Equal(t, []string{"ABC-1", "ABC-3"}, s.Keys())

	// Keeping everything is a no-op.
	assert.False(t, s.Review([]string{"ABC-1", "ABC-3"}))

	// Unknown keys in the kept list are ignored, never added.
	assert.False(t, s.Review([]string{"ABC-1", "ABC-3", "NEW-7"}))
	assert.Equal(t, []string{"ABC-1", "ABC-3"}, s.Keys())
}

func TestKeysReturnsCopy(t *testing.T) {
	s := NewState()
	s.Add("ABC-1")

	keys := s.Keys()
	keys[0] = "MUTATED-1"

	assert.Equal(t, []string{"ABC-1"}, s.Keys())
	assert.True(t, s.Contains("ABC-1"))
	assert.False(t, s.Contains("MUTATED-1"))
}
