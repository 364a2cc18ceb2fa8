package player

// Table is an immutable, ordered collection of records. It is safe for
// concurrent use by any number of readers.
type Table struct {
	records []Record
	byName  map[string]int
	byID    map[string]int
}

// NewTable copies records into a new Table. Later changes to the input slice
// are not visible through the Table.
func NewTable(records []Record) *Table {
	t := &Table{
		records: make([]Record, len(records)),
		byName:  make(map[string]int, len(records)),
		byID:    make(map[string]int),
	}
	for i, r := range records {
		t.records[i] = r.clone()
		if _, ok := t.byName[r.Name]; !ok {
			t.byName[r.Name] = i
		}
		if r.ID != "" {
			if _, ok := t.byID[r.ID]; !ok {
				t.byID[r.ID] = i
			}
		}
	}
	return t
}

// Len returns the number of records. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns a copy of the i-th record.
func (t *Table) At(i int) Record { return t.records[i].clone() }

// Records returns a copy of every record in table order.
func (t *Table) Records() []Record {
	out := make([]Record, t.Len())
	for i := range out {
		out[i] = t.records[i].clone()
	}
	return out
}

// Each calls fn for every record in table order. fn receives a read-only view
// and must not retain the Positions slice.
func (t *Table) Each(fn func(i int, r *Record)) {
	for i := 0; i < t.Len(); i++ {
		fn(i, &t.records[i])
	}
}

// FirstByName returns the index of the first record whose name equals name
// exactly (case-sensitive).
func (t *Table) FirstByName(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.byName[name]
	return i, ok
}

// FirstByID returns the index of the first record with the given ID.
func (t *Table) FirstByID(id string) (int, bool) {
	if t == nil || id == "" {
		return 0, false
	}
	i, ok := t.byID[id]
	return i, ok
}
