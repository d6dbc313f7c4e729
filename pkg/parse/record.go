package parse

// Field is one named value extracted from a record container.
type Field struct {
	Name  string
	Value string
}

// Record is one extracted item. Fields keep the schema's declaration order
// so downstream consumers (the CSV exporter in particular) get stable
// column ordering without relying on map iteration.
type Record []Field

// Get returns the value of the named field and whether it exists.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Names returns the field names in record order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}
