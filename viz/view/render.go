package view

import (
	"nile/viz/extract"
	"nile/viz/render"
	"nile/viz/stream"
)

// Render draws the view onto s and clears the dirty flag. Selected and
// hot extractions are recomputed from the same items on each call.
func (v *View) Render(s render.Surface) {
	v.renderer.Render(s, v.Frame())
	v.dirty = false
}

// Frame returns the render input for the current state.
func (v *View) Frame() *render.Frame {
	f := &render.Frame{
		Mode:        v.mode,
		Count:       len(v.stream),
		All:         v.extracted,
		SelectedSet: v.selected,
		HotItem:     stream.None,
		Transform:   v.transform,
		Bounds:      v.bounds,
	}
	if len(v.selected) > 0 {
		f.Selected = extract.FromItems(v.stream.Subset(v.selected))
	}
	if v.stream.Contains(v.hover) {
		f.HotItem = v.hover
		f.Hot = extract.FromItems(v.stream.Subset([]stream.Handle{v.hover}))
		f.Caption = v.stream.At(v.hover).Object.Describe()
	}
	if v.canShowHelp() {
		f.Help = v.helpText()
		f.HelpOpacity = v.helpOpacity
	}
	return f
}

// canShowHelp limits the help caption to a plot in the last column.
func (v *View) canShowHelp() bool {
	if v.mode != extract.Plot || v.pipeline == nil {
		return false
	}
	return v.cfg.Column == v.pipeline.ColumnCount()-1
}

func (v *View) helpText() string {
	if v.mode == extract.Plot {
		return "Drag points to change initial input."
	}
	return "Drag bars to change initial input."
}
