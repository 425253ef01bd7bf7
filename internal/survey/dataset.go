package survey

import "fmt"

// Dataset is a column-oriented view of survey responses. Rows are
// respondents; columns are response variables. All columns share the
// same row count and row alignment with the weight vector.
type Dataset struct {
	rows  int
	order []string
	cols  map[string][]Value
}

// NewDataset creates an empty dataset with a fixed respondent count.
func NewDataset(rows int) *Dataset {
	return &Dataset{
		rows: rows,
		cols: make(map[string][]Value),
	}
}

// AddColumn registers a named column. The cell slice length must match
// the dataset row count.
func (d *Dataset) AddColumn(name string, cells []Value) error {
	if len(cells) != d.rows {
		return fmt.Errorf("column %q has %d cells, dataset has %d rows", name, len(cells), d.rows)
	}
	if _, exists := d.cols[name]; !exists {
		d.order = append(d.order, name)
	}
	d.cols[name] = cells
	return nil
}

// Rows returns the respondent count.
func (d *Dataset) Rows() int {
	return d.rows
}

// Columns returns column names in insertion order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns the cells of the named column.
func (d *Dataset) Column(name string) ([]Value, bool) {
	cells, ok := d.cols[name]
	return cells, ok
}

// Select returns a new dataset containing only the given rows, in the
// given order. Used for banner-column respondent subsets; the caller
// must filter the weight vector with the same index list.
func (d *Dataset) Select(rows []int) (*Dataset, error) {
	sub := NewDataset(len(rows))
	for _, name := range d.order {
		src := d.cols[name]
		cells := make([]Value, len(rows))
		for i, r := range rows {
			if r < 0 || r >= d.rows {
				return nil, fmt.Errorf("row index %d out of range [0,%d)", r, d.rows)
			}
			cells[i] = src[r]
		}
		if err := sub.AddColumn(name, cells); err != nil {
			return nil, err
		}
	}
	return sub, nil
}
