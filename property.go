package castfile

// PropertyHeaderSize is the size of the fixed part of an encoded property:
// type tag, name length and value count.
const PropertyHeaderSize = 8

// Property is a named value attached to a node.
type Property struct {
	Name  string
	Value Value

	// DeclaredCount is the value count read for a string property, which
	// the format otherwise ignores. It is kept so that decoded files encode
	// back unchanged. When zero, a count of 1 is written.
	DeclaredCount uint32
}

// Type returns the type of the property's value.
func (p *Property) Type() Type {
	if p.Value == nil {
		return TypeInvalid
	}
	return p.Value.Type()
}

// Count returns the value count written to the property header.
func (p *Property) Count() uint32 {
	if p.Value == nil {
		return 0
	}
	if p.Value.Type() == TypeString {
		if p.DeclaredCount == 0 {
			return 1
		}
		return p.DeclaredCount
	}
	return uint32(p.Value.Len())
}

// Len returns the number of bytes the property occupies when encoded.
func (p *Property) Len() int {
	n := PropertyHeaderSize + len(p.Name)
	switch v := p.Value.(type) {
	case nil:
	case ValueString:
		n += len(v) + 1
	default:
		n += v.Len() * v.Type().Size()
	}
	return n
}

// Copy returns a deep copy of the property.
func (p *Property) Copy() *Property {
	c := *p
	if p.Value != nil {
		c.Value = p.Value.Copy()
	}
	return &c
}

// Properties is a set of properties keyed by name. Insertion order is kept so
// that encoding is deterministic. The zero value is an empty set.
type Properties struct {
	list  []*Property
	index map[string]int
}

// Len returns the number of properties.
func (ps *Properties) Len() int {
	return len(ps.list)
}

// Get returns the property of the given name.
func (ps *Properties) Get(name string) (*Property, bool) {
	i, ok := ps.index[name]
	if !ok {
		return nil, false
	}
	return ps.list[i], true
}

// Value returns the value of the property of the given name, or nil if the
// property does not exist.
func (ps *Properties) Value(name string) Value {
	if p, ok := ps.Get(name); ok {
		return p.Value
	}
	return nil
}

// Set creates or replaces the value of the property of the given name. A
// replaced property keeps its position.
func (ps *Properties) Set(name string, value Value) *Property {
	if p, ok := ps.Get(name); ok {
		p.Value = value
		p.DeclaredCount = 0
		return p
	}
	p := &Property{Name: name, Value: value}
	ps.add(p)
	return p
}

// Put inserts p, replacing any property of the same name in place. Returns
// whether a property was replaced.
func (ps *Properties) Put(p *Property) (replaced bool) {
	if i, ok := ps.index[p.Name]; ok {
		ps.list[i] = p
		return true
	}
	ps.add(p)
	return false
}

func (ps *Properties) add(p *Property) {
	if ps.index == nil {
		ps.index = make(map[string]int)
	}
	ps.index[p.Name] = len(ps.list)
	ps.list = append(ps.list, p)
}

// Delete removes the property of the given name. Returns whether the
// property existed.
func (ps *Properties) Delete(name string) bool {
	i, ok := ps.index[name]
	if !ok {
		return false
	}
	ps.list[i] = nil
	ps.list = append(ps.list[:i], ps.list[i+1:]...)
	delete(ps.index, name)
	for j := i; j < len(ps.list); j++ {
		ps.index[ps.list[j].Name] = j
	}
	return true
}

// List returns the properties in order.
func (ps *Properties) List() []*Property {
	list := make([]*Property, len(ps.list))
	copy(list, ps.list)
	return list
}

// Names returns the names of the properties in order.
func (ps *Properties) Names() []string {
	names := make([]string, len(ps.list))
	for i, p := range ps.list {
		names[i] = p.Name
	}
	return names
}

// Copy returns a deep copy of the set.
func (ps *Properties) Copy() Properties {
	var c Properties
	for _, p := range ps.list {
		c.add(p.Copy())
	}
	return c
}
