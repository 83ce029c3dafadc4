package view

import (
	"fmt"

	"nile/viz/anim"
	"nile/viz/extract"
	"nile/viz/geom"
	"nile/viz/hit"
	"nile/viz/layout"
	"nile/viz/object"
	"nile/viz/stream"
)

// PointerDown starts a drag at page position (x, y). shift selects zoom
// instead of pan in plot mode.
func (v *View) PointerDown(x, y int, shift bool) {
	v.last = v.local(x, y)
	v.transformTween.Stop()
	v.boundsTween.Stop()

	if !v.editable {
		v.fadeHelp(1, fadeInPress)
	}

	switch {
	case v.editable && v.hover.Valid():
		v.drag = dragEdit
	case v.mode == extract.Plot && shift:
		v.drag = dragZoom
	case v.mode == extract.Plot:
		v.drag = dragPan
	default:
		v.drag = dragIdle
	}
	v.dirty = true
}

// PointerMove handles motion to page position (x, y): a drag step while a
// button is held, a hover update otherwise.
func (v *View) PointerMove(x, y int, shift bool) {
	if v.drag != dragNone {
		v.dragTo(v.local(x, y), shift)
		return
	}
	if !v.inside {
		return
	}
	v.hoverAt(v.local(x, y))
}

func (v *View) dragTo(p geom.Vec, shift bool) {
	d := p.Sub(v.last)
	v.last = p

	switch v.mode {
	case extract.Plot:
		if v.drag == dragEdit {
			if v.hoverPoint >= 0 {
				v.movePoint(d)
			}
			return
		}
		if shift {
			v.drag = dragZoom
			v.transform = v.transform.Zoom(d.X, d.Y)
		} else {
			v.drag = dragPan
			v.transform = v.transform.Pan(d.X, d.Y)
		}
		v.dirty = true
	case extract.Bars:
		if v.drag == dragEdit && v.hover.Valid() {
			v.adjustReal(-d.Y * v.bounds.DeltaPerPixel)
		}
	}
}

// PointerUp ends a drag. An edit snaps the view back to its content.
func (v *View) PointerUp(x, y int, shift bool) {
	if v.drag == dragNone {
		return
	}
	if !v.editable {
		v.fadeHelp(0, fadeOutPress)
	}
	wasEdit := v.drag == dragEdit
	v.drag = dragNone
	if wasEdit {
		v.logf("view: edit done col=%d mode=%s", v.cfg.Column, v.mode)
		v.ResetView()
	}
	if !v.inside {
		v.setHover(stream.None)
	}
	v.dirty = true
}

// PointerEnter marks the pointer as over the canvas.
func (v *View) PointerEnter(x, y int) {
	v.inside = true
	if v.editable {
		v.fadeHelp(1, fadeInEnter)
	}
	if v.drag == dragNone {
		v.hoverAt(v.local(x, y))
	}
	v.dirty = true
}

// PointerLeave clears hover unless a drag is in progress; hover then stays
// frozen until the button is released.
func (v *View) PointerLeave() {
	v.inside = false
	if v.editable {
		v.fadeHelp(0, fadeOutLeave)
	}
	if v.drag == dragEdit {
		return
	}
	v.setHover(stream.None)
	v.dirty = true
}

// DoubleClick subdivides the hovered curve when every item is a single
// curve and the view is editable, and resets the view otherwise.
func (v *View) DoubleClick(x, y int, shift bool) {
	if v.editable && v.hover.Valid() && len(v.stream) == len(v.extracted.Beziers) {
		v.subdivide(v.hover)
		return
	}
	v.ResetView()
}

func (v *View) hoverAt(p geom.Vec) {
	if len(v.stream) == 0 {
		v.setHover(stream.None)
		return
	}
	w, h := v.size()
	if v.mode == extract.Plot {
		i, ok := hit.NearestPoint(v.extracted.Points, v.transform, w, h, p, hit.Radius)
		if !ok {
			i = -1
		}
		v.setHoverPoint(i)
		return
	}
	item, ok := hit.Bucket(p.X, len(v.stream), v.cfg.Width)
	if !ok {
		item = stream.None
	}
	v.setHover(item)
}

func (v *View) setHoverPoint(i int) {
	if i < 0 {
		v.setHover(stream.None)
		return
	}
	v.setHover(v.extracted.Points[i].Item)
	v.hoverPoint = i
}

// setHover changes the hot item, reporting the exit of the previous one
// before the entry of the new one.
func (v *View) setHover(h stream.Handle) {
	if v.hover == h {
		if !h.Valid() {
			v.hoverPoint = -1
		}
		return
	}
	if v.hover.Valid() && v.pipeline != nil {
		v.pipeline.SetHighlighted(false, v.cfg.Column, v.hover)
	}
	v.hover = h
	v.hoverPoint = -1
	if h.Valid() && v.pipeline != nil {
		v.pipeline.SetHighlighted(true, v.cfg.Column, h)
	}
	v.dirty = true
}

// movePoint rewrites the program input with the hovered point moved by a
// device-space delta, then re-resolves the hovered point by index.
func (v *View) movePoint(d geom.Vec) {
	i := v.hoverPoint
	p := v.extracted.Points[i].Vec
	dx, dy := d.X/v.transform.Scale, -d.Y/v.transform.Scale

	in := v.pipeline.InitialInputStream()
	objs := make([]object.Object, len(in))
	for j, it := range in {
		objs[j] = object.MovePoint(it.Object, p.X, p.Y, p.X+dx, p.Y+dy)
	}
	v.pipeline.SetInitialInputStream(stream.New(objs...))

	if i >= len(v.extracted.Points) {
		panic(fmt.Errorf("view: point %d of %d after edit: %w", i, len(v.extracted.Points), ErrStaleIndex))
	}
	v.setHoverPoint(i)
}

// adjustReal adds delta to the input value at the hovered index.
func (v *View) adjustReal(delta float64) {
	idx := int(v.hover)
	in := v.pipeline.InitialInputStream()
	if idx >= len(in) {
		panic(fmt.Errorf("view: adjust item %d of %d: %w", idx, len(in), ErrStaleIndex))
	}
	objs := in.Objects()
	next, err := object.AddReal(objs[idx], delta)
	if err != nil {
		v.logf("view: adjust col=%d item=%d: %v", v.cfg.Column, idx, err)
		return
	}
	objs[idx] = next
	v.pipeline.SetInitialInputStream(stream.New(objs...))

	if !v.stream.Contains(stream.Handle(idx)) {
		panic(fmt.Errorf("view: item %d of %d after edit: %w", idx, len(v.stream), ErrStaleIndex))
	}
	v.setHover(stream.Handle(idx))
}

// subdivide replaces the input item at h's index by its halves.
func (v *View) subdivide(h stream.Handle) {
	idx := int(h)
	in := v.pipeline.InitialInputStream()
	if idx >= len(in) {
		panic(fmt.Errorf("view: subdivide item %d of %d: %w", idx, len(in), ErrStaleIndex))
	}
	objs := make([]object.Object, 0, len(in)+1)
	var parts int
	for j, it := range in {
		if j == idx {
			halves := object.Subdivide(it.Object)
			parts = len(halves)
			objs = append(objs, halves...)
			continue
		}
		objs = append(objs, it.Object)
	}
	v.logf("view: subdivide col=%d item=%d parts=%d", v.cfg.Column, idx, parts)
	v.pipeline.SetInitialInputStream(stream.New(objs...))
}

// ResetView animates the transform (plot) or bounds (bars) back to the
// fitted values.
func (v *View) ResetView() {
	switch v.mode {
	case extract.Plot:
		v.animateTransform()
	case extract.Bars:
		v.animateBounds()
	}
}

func (v *View) animateTransform() {
	w, h := v.size()
	target := layout.Fit(v.metrics(), w, h)
	a := anim.NewApproach(anim.TransformSpeed)
	v.transformTween.Start(v.sched, func() bool {
		speed := a.Next()
		t := &v.transform
		t.Translation.X = anim.Toward(t.Translation.X, target.Translation.X, speed)
		t.Translation.Y = anim.Toward(t.Translation.Y, target.Translation.Y, speed)
		t.Scale = anim.Toward(t.Scale, target.Scale, speed)
		v.dirty = true
		return !a.Done()
	})
}

func (v *View) animateBounds() {
	target := v.realBounds()
	a := anim.NewApproach(anim.BoundsSpeed)
	v.boundsTween.Start(v.sched, func() bool {
		speed := a.Next()
		hi := anim.Toward(v.bounds.Max, target.Max, speed)
		lo := anim.Toward(v.bounds.Min, target.Min, speed)
		v.bounds = layout.RealBounds(hi, lo, float64(v.cfg.Height))
		v.dirty = true
		return !a.Done()
	})
}

// fadeHelp fades the help caption to target over duration ticks. A fade to
// the current value cancels any running fade and does nothing else.
func (v *View) fadeHelp(target float64, duration uint64) {
	v.helpFade.Stop()
	if v.helpOpacity == target {
		return
	}
	f := anim.NewFade(v.helpOpacity, target, duration)
	v.helpFade.Start(v.sched, func() bool {
		v.helpOpacity = f.Next()
		v.dirty = true
		return !f.Done()
	})
}
