// Package chartdata shapes numeric results into the labels/values pairs
// charting clients consume directly.
package chartdata

// Series is a single chart dataset: parallel label and value slices.
type Series struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// New returns an empty series with the given title.
func New(title string) *Series {
	return &Series{
		Title:  title,
		Labels: []string{},
		Values: []float64{},
	}
}

// Add appends one point to the series.
func (s *Series) Add(label string, value float64) {
	s.Labels = append(s.Labels, label)
	s.Values = append(s.Values, value)
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.Values)
}
