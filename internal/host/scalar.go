package host

import "github.com/featherscript/feather/internal/core/hostops"

func (h *Host) NewInt(v int64) hostops.Handle {
	return h.store.alloc(newIntObject(v))
}

// Int returns the integer value of hd, shimmering a pure-string object in
// place: the cached string survives, the object's kind and numeric cache
// update, and the handle's identity never changes.
func (h *Host) Int(hd hostops.Handle) (int64, bool) {
	o := h.store.get(hd)
	if o == nil {
		return 0, false
	}
	switch o.kind {
	case kindInt:
		return o.i, true
	case kindDouble:
		return 0, false
	}
	v, ok := parseInteger(o.text(h))
	if !ok {
		return 0, false
	}
	o.kind = kindInt
	o.i = v
	return v, true
}

func (h *Host) NewDouble(v float64) hostops.Handle {
	return h.store.alloc(newDoubleObject(v))
}

func (h *Host) Double(hd hostops.Handle) (float64, bool) {
	o := h.store.get(hd)
	if o == nil {
		return 0, false
	}
	switch o.kind {
	case kindDouble:
		return o.f, true
	case kindInt:
		return float64(o.i), true
	}
	v, ok := parseDouble(o.text(h))
	if !ok {
		return 0, false
	}
	o.kind = kindDouble
	o.f = v
	return v, true
}

func (h *Host) Classify(f float64) hostops.DoubleClass {
	return classify(f)
}

func (h *Host) Math(op hostops.MathOp, a, b float64) (float64, error) {
	return mathOp(op, a, b)
}
