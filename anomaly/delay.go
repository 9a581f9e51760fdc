package anomaly

import (
	"slices"
)

// Boundaries holds the index-space geometry of a DelayPart: the window being
// copied and the shifted window it is copied into.
type Boundaries struct {
	CenterIdx int        // axis index nearest the window centre
	SizeIdx   int        // window half-width in samples
	Window    IndexRange // original window [CenterIdx-SizeIdx, CenterIdx+SizeIdx), clipped
	DelayIdx  int        // delay in samples
	Shifted   IndexRange // window moved DelayIdx samples towards index 0, same width as Window unless clipped
}

// DelayMapping lists the sample indices touched by a DelayPart.
type DelayMapping struct {
	Window     IndexRange
	Shifted    IndexRange
	WindowIdx  []int // indices of the original window
	ShiftedIdx []int // indices of the shifted window
	UnionIdx   []int // sorted union of WindowIdx and ShiftedIdx
}

// DefineWindowBoundaries locates the original window on the axis:
// Start = max(0, CenterIdx-SizeIdx) and End = min(N, CenterIdx+SizeIdx).
func DefineWindowBoundaries(axis []float64, center, size float64) (Boundaries, error) {
	if err := validateWindow(center, size); err != nil {
		return Boundaries{}, err
	}
	centerIdx, err := NearestIndex(axis, center)
	if err != nil {
		return Boundaries{}, err
	}
	sizeIdx, err := ToIndexOffset(axis, size)
	if err != nil {
		return Boundaries{}, err
	}

	n := len(axis)
	return Boundaries{
		CenterIdx: centerIdx,
		SizeIdx:   sizeIdx,
		Window: IndexRange{
			Start: max(0, centerIdx-sizeIdx),
			End:   min(n, centerIdx+sizeIdx),
		},
	}, nil
}

// CalculateShiftedBoundary moves the window of b by delay towards index 0:
// ShiftedStart = max(0, Start-DelayIdx) and
// ShiftedEnd = min(ShiftedStart+(End-Start), N).
// A negative delay moves the window towards the end of the axis instead.
func CalculateShiftedBoundary(axis []float64, b Boundaries, delay float64) (Boundaries, error) {
	delayIdx, err := ToIndexOffset(axis, delay)
	if err != nil {
		return Boundaries{}, err
	}

	n := len(axis)
	start := ClampBoundary(b.Window.Start-delayIdx, n)
	b.DelayIdx = delayIdx
	b.Shifted = IndexRange{
		Start: start,
		End:   min(start+b.Window.Len(), n),
	}
	return b, nil
}

// IndicesOfWindows expands the boundaries into index sets. Empty sets mean the
// configuration is degenerate and the transform will have no effect.
func IndicesOfWindows(b Boundaries) DelayMapping {
	m := DelayMapping{
		Window:     b.Window,
		Shifted:    b.Shifted,
		WindowIdx:  b.Window.Indices(),
		ShiftedIdx: b.Shifted.Indices(),
	}

	lo := min(b.Window.Start, b.Shifted.Start)
	hi := max(b.Window.End, b.Shifted.End)
	m.UnionIdx = make([]int, 0, b.Window.Len()+b.Shifted.Len())
	for i := lo; i < hi; i++ {
		if b.Window.Contains(i) || b.Shifted.Contains(i) {
			m.UnionIdx = append(m.UnionIdx, i)
		}
	}
	return m
}

// DelayPart simulates a localised timing artifact by copying a window of the
// signal into an earlier position, optionally removing the resulting seams.
type DelayPart struct {
	AnomalyBase

	center          float64 // centre of the window in axis units
	delay           float64 // shift in axis units, positive moves content towards index 0
	size            float64 // half-width of the window in axis units
	removeArtifacts bool    // true: level the copied segment onto its surroundings

	// internal state, derived once from the fields above
	boundaries Boundaries
	mapping    DelayMapping
}

// Parameters used to request a delay. These map onto the fields of DelayPart.
type DelayParams struct {
	Center          float64 `yaml:"Center" mapstructure:"Center"`                   // centre of the window in axis units
	Delay           float64 `yaml:"Delay" mapstructure:"Delay"`                     // shift in axis units, positive moves content towards index 0
	Size            float64 `yaml:"Size" mapstructure:"Size"`                       // half-width of the window in axis units, must be > 0
	RemoveArtifacts bool    `yaml:"RemoveArtifacts" mapstructure:"RemoveArtifacts"` // whether to remove the discontinuities at the seams
}

// Returns a DelayPart bound to dataAxis, checking for invalid values and
// resolving the window geometry eagerly.
func NewDelayPart(dataAxis []float64, params DelayParams) (*DelayPart, error) {
	d := &DelayPart{}
	d.typeName = "delay"

	if err := validateFinite("delay", params.Delay); err != nil {
		return nil, err
	}
	if err := d.bindAxis(dataAxis); err != nil {
		return nil, err
	}

	b, err := DefineWindowBoundaries(d.axis, params.Center, params.Size)
	if err != nil {
		return nil, err
	}
	b, err = CalculateShiftedBoundary(d.axis, b, params.Delay)
	if err != nil {
		return nil, err
	}

	d.center = params.Center
	d.delay = params.Delay
	d.size = params.Size
	d.removeArtifacts = params.RemoveArtifacts
	d.boundaries = b
	d.mapping = IndicesOfWindows(b)

	return d, nil
}

// Transform returns a copy of signal with the original window's values written
// over the shifted window. The source is truncated if clipping shortened the
// shifted window.
func (d *DelayPart) Transform(signal []float64) ([]float64, error) {
	if err := d.checkShape(signal); err != nil {
		return nil, err
	}

	out := slices.Clone(signal)
	src, dst := d.boundaries.Window, d.boundaries.Shifted
	if dst.IsEmpty() || src.IsEmpty() {
		return out, nil
	}
	copy(out[dst.Start:dst.End], signal[src.Start:src.Start+dst.Len()])

	if d.removeArtifacts {
		removeSeams(out, signal, dst)
	}
	return out, nil
}

// removeSeams levels the copied segment out[r.Start:r.End] so that its first and
// last samples match the original signal at those positions. The offset is
// interpolated linearly across the segment, so the copied shape is kept while
// the jumps against the untouched samples either side of the union disappear.
func removeSeams(out, signal []float64, r IndexRange) {
	first, last := r.Start, r.End-1
	offsetFirst := signal[first] - out[first]
	offsetLast := signal[last] - out[last]

	if first == last {
		out[first] += offsetFirst
		return
	}
	span := float64(last - first)
	for i := first; i <= last; i++ {
		t := float64(i-first) / span
		out[i] += offsetFirst + t*(offsetLast-offsetFirst)
	}
}

// Getters

// Returns the resolved window geometry.
func (d *DelayPart) Boundaries() Boundaries {
	return d.boundaries
}

// Returns the index sets touched by the transform.
func (d *DelayPart) Mapping() DelayMapping {
	m := d.mapping
	m.WindowIdx = slices.Clone(m.WindowIdx)
	m.ShiftedIdx = slices.Clone(m.ShiftedIdx)
	m.UnionIdx = slices.Clone(m.UnionIdx)
	return m
}

func (d *DelayPart) GetCenter() float64 {
	return d.center
}

func (d *DelayPart) GetDelay() float64 {
	return d.delay
}

func (d *DelayPart) GetSize() float64 {
	return d.size
}

func (d *DelayPart) GetRemoveArtifacts() bool {
	return d.removeArtifacts
}

func (p DelayParams) TypeAsString() string {
	return "delay"
}

// Build returns the DelayPart described by p.
func (p DelayParams) Build(dataAxis []float64) (Transform, error) {
	d, err := NewDelayPart(dataAxis, p)
	if err != nil {
		return nil, err
	}
	return d, nil
}
