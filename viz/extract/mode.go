package extract

// Visualization is the rendering chosen for a stream.
type Visualization uint8

const (
	None Visualization = iota
	Plot
	Colors
	Bars
)

func (v Visualization) String() string {
	switch v {
	case Plot:
		return "plot"
	case Colors:
		return "colors"
	case Bars:
		return "bars"
	default:
		return "none"
	}
}

// Choose picks the visualization for a full-stream extraction: points win
// over colors, colors over reals.
func Choose(e Extractions) Visualization {
	switch {
	case len(e.Points) > 0:
		return Plot
	case len(e.Colors) > 0:
		return Colors
	case len(e.Reals) > 0:
		return Bars
	default:
		return None
	}
}
