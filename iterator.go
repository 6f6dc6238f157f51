package hups

import (
	"fmt"
)

// Iterator is a resumable cursor over the (point, coordinate) pairs of a
// point set. It also serves as a Stream: successive uniforms are the
// successive coordinates of the current point.
//
// Iterators are not safe for concurrent use, but any number of iterators may
// traverse the same point set independently.
type Iterator interface {
	Stream

	// NextCoordinate returns the current coordinate of the current point and
	// advances to the next coordinate.
	NextCoordinate() (float64, error)
	// NextCoordinates fills dst with the next len(dst) coordinates.
	NextCoordinates(dst []float64) error
	// NextPoint fills dst with the first len(dst) coordinates of the current
	// point, then moves to the next point and returns its index.
	NextPoint(dst []float64) (int, error)

	// ResetToNextPoint moves to coordinate 0 of the next point and returns
	// its index.
	ResetToNextPoint() int
	// SetCurPointIndex moves to coordinate 0 of point i. i == NumPoints() is
	// allowed so that a traversal can end without an error.
	SetCurPointIndex(i int)
	// SetCurCoordIndex moves to coordinate j of the current point.
	SetCurCoordIndex(j int)
	ResetCurPointIndex()
	ResetCurCoordIndex()
	CurPointIndex() int
	CurCoordIndex() int
	HasNextPoint() bool
	HasNextCoordinate() bool

	NextArrayOfDouble(dst []float64)
	NextArrayOfInt(lo, hi int, dst []int)
	ResetStartStream()
	ResetStartSubstream()
	ResetNextSubstream()

	FormatState() string
}

// walker holds the variant-specific traversal state of a Cursor. The cursor
// owns the indices and the bound checks; the walker produces values.
type walker interface {
	// next returns coordinate c.coord of point c.point. The cursor
	// increments c.coord afterwards.
	next(c *Cursor) (float64, error)
	// advancePoint is called after c.point was incremented by one.
	advancePoint(c *Cursor)
	// seekPoint is called after c.point was set directly; c.coord is 0.
	seekPoint(c *Cursor)
	// seekCoord is called after c.coord was set directly.
	seekCoord(c *Cursor)
}

// bulkWalker is implemented by walkers with a faster path for a span of
// coordinates of one point.
type bulkWalker interface {
	nextN(c *Cursor, dst []float64) error
}

// stateFormatter adds walker state to Cursor.FormatState.
type stateFormatter interface {
	formatState(c *Cursor) string
}

// Cursor is the Iterator implementation used by every point set in this
// package. NewCursor returns the default variant, which calls Coordinate.
type Cursor struct {
	ps    PointSet
	point int
	coord int
	w     walker
}

// NewCursor returns the default iterator over ps: each coordinate is
// obtained from ps.Coordinate. Point sets implemented outside this package
// can return it from their Iterator method.
func NewCursor(ps PointSet) *Cursor {
	return newCursor(ps, coordinateWalker{})
}

func newCursor(ps PointSet, w walker) *Cursor {
	c := &Cursor{ps: ps, w: w}
	w.seekPoint(c)
	return c
}

type coordinateWalker struct{}

func (coordinateWalker) next(c *Cursor) (float64, error) {
	return c.ps.Coordinate(c.point, c.coord), nil
}

func (coordinateWalker) advancePoint(*Cursor) {}
func (coordinateWalker) seekPoint(*Cursor)    {}
func (coordinateWalker) seekCoord(*Cursor)    {}

func (c *Cursor) exhausted(coord int) error {
	return &ExhaustionError{
		Point:     c.point,
		Coord:     coord,
		NumPoints: c.ps.NumPoints(),
		Dim:       c.ps.Dimension(),
	}
}

// NextCoordinate implements Iterator.
func (c *Cursor) NextCoordinate() (float64, error) {
	if c.point >= c.ps.NumPoints() || c.coord >= c.ps.Dimension() {
		return 0, c.exhausted(c.coord)
	}
	v, err := c.w.next(c)
	if err != nil {
		return 0, err
	}
	c.coord++
	return v, nil
}

// NextCoordinates implements Iterator. Nothing is consumed when the span
// does not fit in the dimension.
func (c *Cursor) NextCoordinates(dst []float64) error {
	if c.point >= c.ps.NumPoints() {
		return c.exhausted(c.coord)
	}
	if int64(c.coord)+int64(len(dst)) > int64(c.ps.Dimension()) {
		return c.exhausted(c.coord + len(dst) - 1)
	}
	if len(dst) == 0 {
		return nil
	}
	if bw, ok := c.w.(bulkWalker); ok {
		if err := bw.nextN(c, dst); err != nil {
			return err
		}
		c.coord += len(dst)
		return nil
	}
	for k := range dst {
		v, err := c.w.next(c)
		if err != nil {
			return err
		}
		dst[k] = v
		c.coord++
	}
	return nil
}

// NextPoint implements Iterator.
func (c *Cursor) NextPoint(dst []float64) (int, error) {
	if c.point >= c.ps.NumPoints() {
		return c.point, c.exhausted(0)
	}
	c.ResetCurCoordIndex()
	if err := c.NextCoordinates(dst); err != nil {
		return c.point, err
	}
	return c.ResetToNextPoint(), nil
}

// ResetToNextPoint implements Iterator.
func (c *Cursor) ResetToNextPoint() int {
	c.point++
	c.coord = 0
	c.w.advancePoint(c)
	return c.point
}

// SetCurPointIndex implements Iterator.
func (c *Cursor) SetCurPointIndex(i int) {
	c.point = i
	c.coord = 0
	c.w.seekPoint(c)
}

// SetCurCoordIndex implements Iterator.
func (c *Cursor) SetCurCoordIndex(j int) {
	c.coord = j
	c.w.seekCoord(c)
}

// ResetCurPointIndex implements Iterator.
func (c *Cursor) ResetCurPointIndex() { c.SetCurPointIndex(0) }

// ResetCurCoordIndex implements Iterator.
func (c *Cursor) ResetCurCoordIndex() { c.SetCurCoordIndex(0) }

// CurPointIndex implements Iterator.
func (c *Cursor) CurPointIndex() int { return c.point }

// CurCoordIndex implements Iterator.
func (c *Cursor) CurCoordIndex() int { return c.coord }

// HasNextPoint implements Iterator.
func (c *Cursor) HasNextPoint() bool { return c.point < c.ps.NumPoints() }

// HasNextCoordinate implements Iterator.
func (c *Cursor) HasNextCoordinate() bool { return c.coord < c.ps.Dimension() }

// NextDouble implements Stream. It panics with an *ExhaustionError when the
// point set has no coordinate left, since Stream carries no error.
func (c *Cursor) NextDouble() float64 {
	v, err := c.NextCoordinate()
	if err != nil {
		panic(err)
	}
	return v
}

// NextInt implements Stream. It maps the next coordinate onto [lo, hi].
func (c *Cursor) NextInt(lo, hi int) int {
	return lo + int(c.NextDouble()*(float64(hi)-float64(lo)+1.0))
}

// NextArrayOfDouble implements Iterator.
func (c *Cursor) NextArrayOfDouble(dst []float64) {
	for i := range dst {
		dst[i] = c.NextDouble()
	}
}

// NextArrayOfInt implements Iterator.
func (c *Cursor) NextArrayOfInt(lo, hi int, dst []int) {
	for i := range dst {
		dst[i] = c.NextInt(lo, hi)
	}
}

// ResetStartStream is ResetCurPointIndex.
func (c *Cursor) ResetStartStream() { c.ResetCurPointIndex() }

// ResetStartSubstream is ResetCurCoordIndex.
func (c *Cursor) ResetStartSubstream() { c.ResetCurCoordIndex() }

// ResetNextSubstream is ResetToNextPoint.
func (c *Cursor) ResetNextSubstream() { c.ResetToNextPoint() }

// FormatState implements Iterator.
func (c *Cursor) FormatState() string {
	s := fmt.Sprintf("Current point index: %d\nCurrent coordinate index: %d", c.point, c.coord)
	if sf, ok := c.w.(stateFormatter); ok {
		s += "\n" + sf.formatState(c)
	}
	return s
}
