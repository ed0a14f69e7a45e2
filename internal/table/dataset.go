package table

import "sort"

// Row maps column name to cell value. A missing key reads as Null.
type Row map[string]Value

// Get returns the value for column, or Null when absent.
func (r Row) Get(column string) Value {
	if r == nil {
		return Null()
	}
	return r[column]
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an ordered sequence of rows sharing a column set. Transforms never
// mutate a Dataset in place; they build a new one.
type Dataset struct {
	columns []string
	rows    []Row
}

// New builds a dataset. Rows are copied so later changes to the caller's maps
// do not leak in.
func New(columns []string, rows []Row) Dataset {
	cols := append([]string(nil), columns...)
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.clone()
	}
	return Dataset{columns: cols, rows: out}
}

// Columns returns a copy of the column names in load order.
func (d Dataset) Columns() []string { return append([]string(nil), d.columns...) }

// HasColumn reports whether name is one of the dataset's columns.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d.rows) }

// Row returns a copy of row i.
func (d Dataset) Row(i int) Row { return d.rows[i].clone() }

// Value returns the cell at row i, column name.
func (d Dataset) Value(i int, column string) Value { return d.rows[i].Get(column) }

// Rows returns copies of all rows.
func (d Dataset) Rows() []Row {
	out := make([]Row, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.clone()
	}
	return out
}

// Clone returns a reference-distinct copy with the same contents.
func (d Dataset) Clone() Dataset { return New(d.columns, d.rows) }

// Map applies fn to a copy of every row and returns the resulting dataset.
// fn receives the row index so it can report row-level problems.
func (d Dataset) Map(fn func(i int, r Row) (Row, error)) (Dataset, error) {
	out := make([]Row, len(d.rows))
	for i, r := range d.rows {
		nr, err := fn(i, r.clone())
		if err != nil {
			return Dataset{}, err
		}
		out[i] = nr
	}
	return Dataset{columns: append([]string(nil), d.columns...), rows: out}, nil
}

// MapColumn replaces the value of one column in every row.
func (d Dataset) MapColumn(column string, fn func(i int, v Value) (Value, error)) (Dataset, error) {
	return d.Map(func(i int, r Row) (Row, error) {
		nv, err := fn(i, r.Get(column))
		if err != nil {
			return nil, err
		}
		r[column] = nv
		return r, nil
	})
}

// Filter keeps rows for which keep returns true.
func (d Dataset) Filter(keep func(r Row) bool) Dataset {
	out := make([]Row, 0, len(d.rows))
	for _, r := range d.rows {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return Dataset{columns: append([]string(nil), d.columns...), rows: out}
}

// Distinct returns the unique non-null text values of column, sorted.
func (d Dataset) Distinct(column string) []string {
	seen := map[string]struct{}{}
	for _, r := range d.rows {
		v := r.Get(column)
		if v.IsNull() {
			continue
		}
		seen[v.Text()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
