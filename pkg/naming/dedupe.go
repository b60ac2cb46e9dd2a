package naming

import "strconv"

// Deduper hands out unique names within one container by appending 2, 3, ...
// to repeated names. It is not safe for concurrent use.
type Deduper struct {
	taken map[string]struct{}
	next  map[string]int
}

// NewDeduper returns an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{
		taken: make(map[string]struct{}),
		next:  make(map[string]int),
	}
}

// Unique returns name, or name suffixed with the smallest counter that keeps
// it unique.
func (d *Deduper) Unique(name string) string {
	if _, ok := d.taken[name]; !ok {
		d.taken[name] = struct{}{}
		return name
	}
	counter := d.next[name]
	if counter < 2 {
		counter = 2
	}
	for {
		candidate := name + strconv.Itoa(counter)
		counter++
		if _, ok := d.taken[candidate]; !ok {
			d.taken[candidate] = struct{}{}
			d.next[name] = counter
			return candidate
		}
	}
}
