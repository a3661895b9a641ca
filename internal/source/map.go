package source

// Map serves values from a fixed set of pairs, such as -P key=value flags.
type Map struct {
	name   string
	values map[string]string
}

func NewMap(name string, values map[string]string) *Map {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Map{name: name, values: copied}
}

func (m *Map) Name() string {
	return m.name
}

func (m *Map) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Map) Status() Status {
	return Status{Name: m.name, Available: true, Keys: len(m.values)}
}
