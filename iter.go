package xjdp

import "context"

// Features iterates lazily over every feature in one category, fetching
// each detail record on demand:
//
//	it := catalog.Features(ctx, xjdp.CategoryCamp)
//	for it.Next() {
//		fmt.Println(it.Feature())
//	}
//	if err := it.Err(); err != nil {
//		return err
//	}
//
// A cursor is single-use and not safe for concurrent use.
type Features struct {
	ctx     context.Context
	catalog *Catalog
	cat     Category

	markers []Marker
	started bool
	idx     int
	cur     *Feature
	err     error
}

// Features returns a cursor over the category's features in marker index
// order. Nothing is fetched until the first Next call.
func (c *Catalog) Features(ctx context.Context, cat Category) *Features {
	return &Features{ctx: ctx, catalog: c, cat: cat}
}

// Next fetches the next feature's detail record. It returns false once
// the category is exhausted or an error occurs; Err distinguishes the
// two.
func (it *Features) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		it.markers, it.err = it.catalog.Markers(it.ctx, it.cat)
		if it.err != nil {
			return false
		}
	}
	if it.idx >= len(it.markers) {
		it.cur = nil
		return false
	}

	m := it.markers[it.idx]
	it.idx++
	it.cur, it.err = it.catalog.Feature(it.ctx, m.Properties.ID, it.cat)
	if it.err != nil {
		it.cur = nil
		return false
	}
	return true
}

// Feature returns the feature produced by the most recent successful
// Next.
func (it *Features) Feature() *Feature {
	return it.cur
}

// Err returns the first error encountered by Next, if any.
func (it *Features) Err() error {
	return it.err
}
