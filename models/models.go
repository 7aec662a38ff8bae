package models

// Point is a real-valued canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type OperationKind string

const (
	KindStroke OperationKind = "stroke"
	KindErase  OperationKind = "erase"
)

// Operation is one atomic stroke or erase action: an ordered list of
// points plus style metadata. Sequence is assigned once by the room's
// operation log and defines total order within the room; it is preserved
// through undo/redo.
type Operation struct {
	Id        string        `json:"id"`
	AuthorId  string        `json:"authorId"`
	Kind      OperationKind `json:"kind"`
	Color     string        `json:"color,omitempty"`
	Width     float64       `json:"strokeWidth"`
	Points    []Point       `json:"points"`
	CreatedAt int64         `json:"createdAt"`
	Sequence  uint64        `json:"sequence"`
}

// Clone returns a copy whose points slice does not alias the original.
func (o Operation) Clone() Operation {
	points := make([]Point, len(o.Points))
	copy(points, o.Points)
	o.Points = points
	return o
}

// Participant is one presence-table entry: a joined identity and its live
// display attributes.
type Participant struct {
	Id          string `json:"id"`
	DisplayName string `json:"name"`
	Color       string `json:"color"`
	Cursor      *Point `json:"cursor,omitempty"`
	Active      bool   `json:"active"`
}

func (p Participant) Clone() Participant {
	if p.Cursor != nil {
		cursor := *p.Cursor
		p.Cursor = &cursor
	}
	return p
}

// Session is a live connection's view: the identity it represents, the
// display color assigned at connect time, and the room it is currently
// in. RoomKey is empty until the first join and after a leave.
type Session struct {
	Id          string
	DisplayName string
	Color       string
	RoomKey     string
}

// Snapshot is the state a newly joining participant needs to reconstruct
// the canvas: the full ordered operation list plus the current sequence
// counter.
type Snapshot struct {
	Operations     []Operation `json:"operations"`
	SequenceNumber uint64      `json:"sequenceNumber"`
}
