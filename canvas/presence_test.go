package canvas_test

import (
	"testing"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/canvas"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresence_AddAndOverwrite(t *testing.T) {
	table := canvas.NewPresenceTable()

	p := table.Add("u1", "Alice", "#e6194b")
	assert.Equal(t, "u1", p.Id)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.True(t, p.Active)
	assert.Nil(t, p.Cursor)

	// Re-adding overwrites the record.
	table.Add("u1", "Alice2", "#3cb44b")
	list := table.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Alice2", list[0].DisplayName)
}

func TestPresence_Remove(t *testing.T) {
	table := canvas.NewPresenceTable()
	table.Add("u1", "Alice", "#e6194b")

	assert.True(t, table.Remove("u1"))
	assert.False(t, table.Remove("u1"))
	assert.Zero(t, table.Len())
}

func TestPresence_UpdateCursor(t *testing.T) {
	table := canvas.NewPresenceTable()
	table.Add("u1", "Alice", "#e6194b")

	table.UpdateCursor("u1", models.Point{X: 10, Y: 20})

	list := table.List()
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Cursor)
	assert.Equal(t, models.Point{X: 10, Y: 20}, *list[0].Cursor)
	assert.True(t, list[0].Active)
}

func TestPresence_UpdateCursorUnknownIsNoOp(t *testing.T) {
	table := canvas.NewPresenceTable()

	// Cursor event arriving after a leave must not recreate the entry.
	table.UpdateCursor("gone", models.Point{X: 1, Y: 1})
	assert.Empty(t, table.List())
}

func TestPresence_ListReturnsCopies(t *testing.T) {
	table := canvas.NewPresenceTable()
	table.Add("u1", "Alice", "#e6194b")
	table.UpdateCursor("u1", models.Point{X: 1, Y: 1})

	list := table.List()
	list[0].DisplayName = "mutated"
	*list[0].Cursor = models.Point{X: 99, Y: 99}

	fresh := table.List()
	assert.Equal(t, "Alice", fresh[0].DisplayName)
	assert.Equal(t, models.Point{X: 1, Y: 1}, *fresh[0].Cursor)
}
