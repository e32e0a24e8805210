package ui

import "github.com/five82/apolice/internal/policy"

// LookupFunc resolves a record by its stable key.
type LookupFunc func(key string) (policy.Record, bool)

// ModalController owns the detail overlay state. It is either closed or open
// on a record key, never on a row position, so replacing the result set
// cannot make it show a different record.
type ModalController struct {
	lookup LookupFunc
	key    string
	open   bool
}

// NewModalController returns a closed controller.
func NewModalController(lookup LookupFunc) ModalController {
	return ModalController{lookup: lookup}
}

// Open shows the record with the given key. When the key does not resolve
// the controller ends closed and Open returns false.
func (c *ModalController) Open(key string) bool {
	if key == "" || c.lookup == nil {
		c.Close()
		return false
	}
	if _, ok := c.lookup(key); !ok {
		c.Close()
		return false
	}
	c.key = key
	c.open = true
	return true
}

// Close hides the overlay. It is always legal.
func (c *ModalController) Close() {
	c.key = ""
	c.open = false
}

// Revalidate closes the overlay when its record is no longer in the result
// set. It reports whether the overlay was closed.
func (c *ModalController) Revalidate() bool {
	if !c.open {
		return false
	}
	if _, ok := c.Record(); ok {
		return false
	}
	c.Close()
	return true
}

// Record looks up the open record. Rendering always goes through here so a
// refreshed result set shows the latest version of the same record.
func (c ModalController) Record() (policy.Record, bool) {
	if !c.open || c.lookup == nil {
		return policy.Record{}, false
	}
	return c.lookup(c.key)
}

// IsOpen reports whether the overlay is visible.
func (c ModalController) IsOpen() bool { return c.open }

// Key returns the key of the open record, or "".
func (c ModalController) Key() string { return c.key }

// BackgroundLocked reports whether table navigation and form input are
// suspended. Model routes every key and mouse event to the overlay while it
// holds.
func (c ModalController) BackgroundLocked() bool { return c.open }

