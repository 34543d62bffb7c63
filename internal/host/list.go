package host

import "github.com/featherscript/feather/internal/core/hostops"

func (h *Host) NewList(items ...hostops.Handle) hostops.Handle {
	return h.store.alloc(newListObject(items))
}

// ParseList returns hd itself when it already holds a list; otherwise it
// returns a new list-kind handle parsed from hd's string form. It does
// not mutate hd.
func (h *Host) ParseList(hd hostops.Handle) (hostops.Handle, error) {
	o := h.store.get(hd)
	if o != nil && o.kind == kindList {
		return hd, nil
	}
	words, err := splitTclList(h.Bytes(hd))
	if err != nil {
		return 0, h.wrap(err, "parse list")
	}
	items := make([]hostops.Handle, len(words))
	for i, w := range words {
		items[i] = h.Intern(w)
	}
	return h.NewList(items...), nil
}

func (h *Host) IsList(hd hostops.Handle) bool {
	o := h.store.get(hd)
	return o != nil && o.kind == kindList
}

func (h *Host) Len(hd hostops.Handle) int {
	o := h.store.get(hd)
	if o == nil || o.kind != kindList {
		return 0
	}
	return len(o.list)
}

func (h *Host) At(hd hostops.Handle, i int) (hostops.Handle, bool) {
	o := h.store.get(hd)
	if o == nil || o.kind != kindList || i < 0 || i >= len(o.list) {
		return 0, false
	}
	return o.list[i], true
}

func (h *Host) Items(hd hostops.Handle) []hostops.Handle {
	o := h.store.get(hd)
	if o == nil || o.kind != kindList {
		return nil
	}
	out := make([]hostops.Handle, len(o.list))
	copy(out, o.list)
	return out
}

func (h *Host) Push(hd hostops.Handle, v hostops.Handle) hostops.Handle {
	items := h.Items(hd)
	items = append(items, v)
	return h.NewList(items...)
}

func (h *Host) Pop(hd hostops.Handle) (hostops.Handle, hostops.Handle, bool) {
	items := h.Items(hd)
	if len(items) == 0 {
		return hd, 0, false
	}
	last := items[len(items)-1]
	return h.NewList(items[:len(items)-1]...), last, true
}

func (h *Host) Shift(hd hostops.Handle) (hostops.Handle, hostops.Handle, bool) {
	items := h.Items(hd)
	if len(items) == 0 {
		return hd, 0, false
	}
	first := items[0]
	return h.NewList(items[1:]...), first, true
}

func (h *Host) Unshift(hd hostops.Handle, v hostops.Handle) hostops.Handle {
	items := h.Items(hd)
	out := make([]hostops.Handle, 0, len(items)+1)
	out = append(out, v)
	out = append(out, items...)
	return h.NewList(out...)
}

func (h *Host) Slice(hd hostops.Handle, lo, hi int) hostops.Handle {
	items := h.Items(hd)
	lo, hi = clampRange(lo, hi, len(items))
	return h.NewList(items[lo:hi]...)
}

func (h *Host) SetAt(hd hostops.Handle, i int, v hostops.Handle) (hostops.Handle, bool) {
	items := h.Items(hd)
	if i < 0 || i >= len(items) {
		return hd, false
	}
	out := make([]hostops.Handle, len(items))
	copy(out, items)
	out[i] = v
	return h.NewList(out...), true
}
