package timeline

// Drag tracks a pointer or touch pan over the strip. It only ever produces
// scroll offsets; period data is never touched.
type Drag struct {
	Sensitivity int

	active       bool
	anchorX      int
	anchorScroll int
}

// NewDrag returns a drag tracker using the engine's sensitivity.
func (e Engine) NewDrag() *Drag {
	return &Drag{Sensitivity: e.Sensitivity}
}

// Press records the anchor on pointer or touch down.
func (d *Drag) Press(x, scroll int) {
	d.active = true
	d.anchorX = x
	d.anchorScroll = scroll
}

// Move returns the scroll offset for pointer position x. ok is false when no
// drag is in progress.
func (d *Drag) Move(x int) (scroll int, ok bool) {
	if !d.active {
		return 0, false
	}
	return d.anchorScroll - (x-d.anchorX)*d.Sensitivity, true
}

// Release ends tracking on pointer or touch up.
func (d *Drag) Release() {
	d.active = false
}

// Leave ends tracking when the pointer leaves the surface.
func (d *Drag) Leave() {
	d.Release()
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// Moved reports whether x differs from the anchor, telling a click from a drag.
func (d *Drag) Moved(x int) bool {
	return d.active && x != d.anchorX
}
