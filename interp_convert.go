package feather

import "fmt"

// AsInt converts o to int64, shimmering the object's internal
// representation in place if it is not already an integer.
func AsInt(o *Obj) (int64, error) {
	if o == nil {
		return 0, nil
	}
	v, ok := o.in.eng.Ops().Int(o.h)
	if !ok {
		return 0, fmt.Errorf("expected integer but got %q", o.String())
	}
	return v, nil
}

// AsDouble converts o to float64, shimmering the object's internal
// representation in place if it is not already a double.
func AsDouble(o *Obj) (float64, error) {
	if o == nil {
		return 0, nil
	}
	v, ok := o.in.eng.Ops().Double(o.h)
	if !ok {
		return 0, fmt.Errorf("expected floating-point number but got %q", o.String())
	}
	return v, nil
}

// AsList converts o to a slice of *Obj, parsing the string
// representation as a TCL list if it is not already one.
func AsList(o *Obj) ([]*Obj, error) {
	if o == nil {
		return nil, nil
	}
	ops := o.in.eng.Ops()
	h, err := ops.ParseList(o.h)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to list: %w", o.String(), err)
	}
	items := ops.Items(h)
	out := make([]*Obj, len(items))
	for i, item := range items {
		out[i] = newObj(o.in, item)
	}
	return out, nil
}

// AsDict converts o to a [*DictType], parsing the string representation
// as a TCL dict if it is not already one.
func AsDict(o *Obj) (*DictType, error) {
	if o == nil {
		return &DictType{Items: make(map[string]*Obj)}, nil
	}
	ops := o.in.eng.Ops()
	h, err := ops.ParseDict(o.h)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %q to dict: %w", o.String(), err)
	}
	entries := ops.Iterate(h)
	d := &DictType{
		Items: make(map[string]*Obj, len(entries)),
		Order: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		key := ops.Bytes(e.Key)
		d.Items[key] = newObj(o.in, e.Value)
		d.Order = append(d.Order, key)
	}
	return d, nil
}

// AsBool converts o to a boolean using TCL boolean rules: numeric
// non-zero, or one of the boolean barewords (true/false/yes/no/on/off),
// case-insensitively.
func AsBool(o *Obj) (bool, error) {
	if o == nil {
		return false, nil
	}
	if !o.in.eng.IsBoolean(o.h) {
		return false, fmt.Errorf("expected boolean but got %q", o.String())
	}
	return o.in.eng.Truthy(o.h), nil
}
