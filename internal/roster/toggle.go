package roster

// Direction is a display-name sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Toggle is the two-state sort control. The zero value starts ascending.
type Toggle struct {
	next Direction
}

// Direction returns the order the next Invoke will apply.
func (t Toggle) Direction() Direction {
	if t.next == "" {
		return Ascending
	}
	return t.next
}

// Invoke sorts c in the current direction, flips the toggle, and returns the
// direction that was applied.
func (t *Toggle) Invoke(c *Collection) Direction {
	dir := t.Direction()
	c.SortByDisplayName(dir)
	t.next = dir.Opposite()
	return dir
}
