package canvas_test

import (
	"testing"

	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/canvas"
	"github.com/adityavvvn/Real-Time-Collaborative-Drawing-Canvas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T) *canvas.Room {
	t.Helper()
	return canvas.NewRegistry().Resolve("test")
}

func TestAppendPointOwned_GuardsAuthor(t *testing.T) {
	room := newTestRoom(t)
	op := room.Append(models.Operation{
		AuthorId: "alice",
		Kind:     models.KindStroke,
		Points:   []models.Point{{X: 0, Y: 0}},
	})

	// Another participant referencing the same id must not mutate it.
	_, ok := room.AppendPointOwned(op.Id, "bob", models.Point{X: 5, Y: 5})
	assert.False(t, ok)

	kind, ok := room.AppendPointOwned(op.Id, "alice", models.Point{X: 5, Y: 5})
	require.True(t, ok)
	assert.Equal(t, models.KindStroke, kind)

	snap := room.Snapshot()
	require.Len(t, snap.Operations, 1)
	assert.Len(t, snap.Operations[0].Points, 2)
}

func TestAppendPointOwned_StaleId(t *testing.T) {
	room := newTestRoom(t)
	op := room.Append(models.Operation{
		AuthorId: "alice",
		Kind:     models.KindStroke,
		Points:   []models.Point{{X: 0, Y: 0}},
	})
	_, ok := room.Undo()
	require.True(t, ok)

	_, ok = room.AppendPointOwned(op.Id, "alice", models.Point{X: 5, Y: 5})
	assert.False(t, ok, "point after undo is silently dropped")
}

func TestFinishOwned_SameGuardForBothKinds(t *testing.T) {
	room := newTestRoom(t)
	strokeOp := room.Append(models.Operation{
		AuthorId: "alice",
		Kind:     models.KindStroke,
		Points:   []models.Point{{}},
	})
	eraseOp := room.Append(models.Operation{
		AuthorId: "alice",
		Kind:     models.KindErase,
		Points:   []models.Point{{}},
	})

	_, ok := room.FinishOwned(strokeOp.Id, "bob")
	assert.False(t, ok)
	_, ok = room.FinishOwned(eraseOp.Id, "bob")
	assert.False(t, ok)

	kind, ok := room.FinishOwned(strokeOp.Id, "alice")
	require.True(t, ok)
	assert.Equal(t, models.KindStroke, kind)

	kind, ok = room.FinishOwned(eraseOp.Id, "alice")
	require.True(t, ok)
	assert.Equal(t, models.KindErase, kind)
}

func TestRoomStats(t *testing.T) {
	room := newTestRoom(t)
	room.AddParticipant("u1", "Alice", "#e6194b")
	room.Append(models.Operation{Kind: models.KindStroke, Points: []models.Point{{}}})
	room.Append(models.Operation{Kind: models.KindErase, Points: []models.Point{{}}})

	participants, operations, nextSequence := room.Stats()
	assert.Equal(t, 1, participants)
	assert.Equal(t, 2, operations)
	assert.Equal(t, uint64(2), nextSequence)
}

func TestOperationsSince(t *testing.T) {
	room := newTestRoom(t)
	room.Append(models.Operation{Kind: models.KindStroke, Points: []models.Point{{}}})
	second := room.Append(models.Operation{Kind: models.KindStroke, Points: []models.Point{{}}})

	since := room.OperationsSince(0)
	require.Len(t, since, 1)
	assert.Equal(t, second.Id, since[0].Id)
}
