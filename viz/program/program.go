// Package program is the pipeline the viewer edits and inspects: an initial
// input stream followed by stages, one column per stream.
package program

import (
	"fmt"

	"nile/hal"
	"nile/viz/stream"
)

// Stage derives a stream from the previous column. Every output item must
// list the indices of the input items it was derived from in Parents.
type Stage struct {
	Name  string
	Apply func(in stream.Stream) stream.Stream
}

// Viewer is a column display registered with a Program.
type Viewer interface {
	Column() int
	SetStream(s stream.Stream)
	SetSelectedItems(hs []stream.Handle)
}

// Program owns the initial input stream and recomputes every column when it
// is rewritten.
type Program struct {
	Name string

	stages  []Stage
	columns []stream.Stream
	views   []Viewer
	logger  hal.Logger
}

// New returns a program over initial followed by stages.
func New(name string, initial stream.Stream, stages ...Stage) *Program {
	p := &Program{Name: name, stages: stages}
	p.recompute(initial)
	return p
}

// SetLogger sets the destination of rewrite logs. nil disables logging.
func (p *Program) SetLogger(l hal.Logger) { p.logger = l }

func (p *Program) logf(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.WriteLineString(fmt.Sprintf(format, args...))
}

// ColumnCount returns the number of streams: the input plus one per stage.
func (p *Program) ColumnCount() int { return len(p.columns) }

// Column returns the stream shown in column c, or nil when out of range.
func (p *Program) Column(c int) stream.Stream {
	if c < 0 || c >= len(p.columns) {
		return nil
	}
	return p.columns[c]
}

// StageName returns the title of column c.
func (p *Program) StageName(c int) string {
	if c <= 0 || c > len(p.stages) {
		return "input"
	}
	return p.stages[c-1].Name
}

// InitialInputStream returns column 0.
func (p *Program) InitialInputStream() stream.Stream { return p.columns[0] }

// SetInitialInputStream replaces the input, recomputes every stage and
// pushes the new columns to the registered views in column order.
func (p *Program) SetInitialInputStream(s stream.Stream) {
	p.recompute(s)
	p.logf("program: rewrite name=%s items=%d columns=%d", p.Name, len(s), len(p.columns))
	for _, v := range p.views {
		v.SetStream(p.Column(v.Column()))
	}
}

// Register attaches v and hands it its column.
func (p *Program) Register(v Viewer) {
	p.views = append(p.views, v)
	v.SetStream(p.Column(v.Column()))
}

func (p *Program) recompute(initial stream.Stream) {
	cols := make([]stream.Stream, 0, len(p.stages)+1)
	cols = append(cols, initial)
	cur := initial
	for _, st := range p.stages {
		cur = st.Apply(cur)
		cols = append(cols, cur)
	}
	p.columns = cols
}

// SetHighlighted selects, in every other column, the items related to h in
// column: its ancestors through Parents and the items derived from it.
// Turning a highlight off clears those selections.
func (p *Program) SetHighlighted(on bool, column int, h stream.Handle) {
	var related [][]stream.Handle
	if on {
		related = p.Related(column, h)
	}
	for _, v := range p.views {
		c := v.Column()
		if c == column {
			continue
		}
		if related == nil || c < 0 || c >= len(related) {
			v.SetSelectedItems(nil)
			continue
		}
		v.SetSelectedItems(related[c])
	}
}

// Related returns, per column, the handles of the ancestors and
// descendants of h in column. The entry for column itself is h alone.
func (p *Program) Related(column int, h stream.Handle) [][]stream.Handle {
	if column < 0 || column >= len(p.columns) || !p.columns[column].Contains(h) {
		return nil
	}
	out := make([][]stream.Handle, len(p.columns))
	out[column] = []stream.Handle{h}

	set := map[int]bool{int(h): true}
	for c := column; c > 0 && len(set) > 0; c-- {
		up := make(map[int]bool)
		for i := range set {
			for _, parent := range p.columns[c][i].Parents {
				if p.columns[c-1].Contains(stream.Handle(parent)) {
					up[parent] = true
				}
			}
		}
		out[c-1] = sortedHandles(up)
		set = up
	}

	set = map[int]bool{int(h): true}
	for c := column + 1; c < len(p.columns) && len(set) > 0; c++ {
		down := make(map[int]bool)
		for i, it := range p.columns[c] {
			for _, parent := range it.Parents {
				if set[parent] {
					down[i] = true
					break
				}
			}
		}
		out[c] = sortedHandles(down)
		set = down
	}
	return out
}

func sortedHandles(set map[int]bool) []stream.Handle {
	if len(set) == 0 {
		return nil
	}
	hi := 0
	for i := range set {
		if i > hi {
			hi = i
		}
	}
	out := make([]stream.Handle, 0, len(set))
	for i := 0; i <= hi; i++ {
		if set[i] {
			out = append(out, stream.Handle(i))
		}
	}
	return out
}
