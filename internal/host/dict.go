package host

import "github.com/featherscript/feather/internal/core/hostops"

func (h *Host) NewDict() hostops.Handle {
	return h.store.alloc(newDictObject())
}

func (h *Host) ParseDict(hd hostops.Handle) (hostops.Handle, error) {
	o := h.store.get(hd)
	if o != nil && o.kind == kindDict {
		return hd, nil
	}
	words, err := splitTclList(h.Bytes(hd))
	if err != nil {
		return 0, h.wrap(err, "parse dict")
	}
	if len(words)%2 != 0 {
		return 0, h.wrap(errOddDict, "parse dict")
	}
	d := newDictObject()
	for i := 0; i+1 < len(words); i += 2 {
		k := words[i]
		if _, seen := d.dictVals[k]; !seen {
			d.dictKeys = append(d.dictKeys, k)
		}
		d.dictVals[k] = h.Intern(words[i+1])
		d.dictKeyH[k] = h.Intern(k)
	}
	return h.store.alloc(d), nil
}

func (h *Host) IsDict(hd hostops.Handle) bool {
	o := h.store.get(hd)
	return o != nil && o.kind == kindDict
}

func (h *Host) Get(hd hostops.Handle, key hostops.Handle) (hostops.Handle, bool) {
	o := h.store.get(hd)
	if o == nil || o.kind != kindDict {
		return 0, false
	}
	v, ok := o.dictVals[h.Bytes(key)]
	return v, ok
}

func (h *Host) Set(hd hostops.Handle, key, val hostops.Handle) hostops.Handle {
	o := h.store.get(hd)
	nd := cloneDict(o)
	k := h.Bytes(key)
	if _, seen := nd.dictVals[k]; !seen {
		nd.dictKeys = append(nd.dictKeys, k)
		nd.dictKeyH[k] = key
	}
	nd.dictVals[k] = val
	return h.store.alloc(nd)
}

func (h *Host) Unset(hd hostops.Handle, key hostops.Handle) hostops.Handle {
	o := h.store.get(hd)
	nd := cloneDict(o)
	k := h.Bytes(key)
	if _, seen := nd.dictVals[k]; seen {
		delete(nd.dictVals, k)
		delete(nd.dictKeyH, k)
		for i, kk := range nd.dictKeys {
			if kk == k {
				nd.dictKeys = append(nd.dictKeys[:i], nd.dictKeys[i+1:]...)
				break
			}
		}
	}
	return h.store.alloc(nd)
}

func (h *Host) DictSize(hd hostops.Handle) int {
	o := h.store.get(hd)
	if o == nil || o.kind != kindDict {
		return 0
	}
	return len(o.dictKeys)
}

func (h *Host) Keys(hd hostops.Handle) []hostops.Handle {
	o := h.store.get(hd)
	if o == nil || o.kind != kindDict {
		return nil
	}
	out := make([]hostops.Handle, len(o.dictKeys))
	for i, k := range o.dictKeys {
		out[i] = o.dictKeyH[k]
	}
	return out
}

func (h *Host) Iterate(hd hostops.Handle) []hostops.DictEntry {
	o := h.store.get(hd)
	if o == nil || o.kind != kindDict {
		return nil
	}
	out := make([]hostops.DictEntry, len(o.dictKeys))
	for i, k := range o.dictKeys {
		out[i] = hostops.DictEntry{Key: o.dictKeyH[k], Value: o.dictVals[k]}
	}
	return out
}

func cloneDict(o *object) *object {
	nd := newDictObject()
	if o == nil || o.kind != kindDict {
		return nd
	}
	nd.dictKeys = append(nd.dictKeys, o.dictKeys...)
	for k, v := range o.dictVals {
		nd.dictVals[k] = v
	}
	for k, v := range o.dictKeyH {
		nd.dictKeyH[k] = v
	}
	return nd
}
