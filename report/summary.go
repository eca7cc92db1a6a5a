package report

import (
	"fmt"
	"math"
	"os"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/bdelements/DG3D/mesh"
	"github.com/notargets/bdelements/InputParameters"
)

// Summary describes one completed run. Histogram[c] is the number of
// elements with exactly c stationary nodes.
type Summary struct {
	Parameters   InputParameters.RunParameters `json:"Parameters"`
	Timestamp    float64                       `json:"Timestamp"`
	NumNodes     int                           `json:"NumNodes"`
	NumElements  int                           `json:"NumElements"`
	NumBoundary  int                           `json:"NumBoundaryElements"`
	NumAtRest    int                           `json:"NumStationaryNodes"`
	Histogram    []int                         `json:"FlagHistogram"`
	BoundingBox  *Box                          `json:"BoundingBox,omitempty"`
	SpeedRange   *Range                        `json:"SpeedRange,omitempty"`
	HasNaNSpeeds bool                          `json:"HasNaNSpeeds,omitempty"`
}

type Box struct {
	Min [3]float64 `json:"Min"`
	Max [3]float64 `json:"Max"`
}

type Range struct {
	Min float64 `json:"Min"`
	Max float64 `json:"Max"`
}

// Build collects the summary for a classified snapshot. isStationary is the
// same predicate the classifier used.
func Build(rp InputParameters.RunParameters, m *mesh.Mesh, vf *mesh.VelocityField,
	flags *mesh.ElementFlags, isStationary func(float64) bool) (*Summary, error) {
	s := &Summary{
		Parameters:  rp,
		Timestamp:   vf.Timestamp,
		NumNodes:    m.NumVertices,
		NumElements: m.NumElements,
		NumBoundary: flags.NumBoundary(),
		Histogram:   flags.Histogram(rp.ND + 1),
	}
	if m.NumVertices == 0 {
		return s, nil
	}

	s.BoundingBox = &Box{}
	for d := 0; d < 3; d++ {
		axis, err := m.Axis(d)
		if err != nil {
			return nil, err
		}
		s.BoundingBox.Min[d] = floats.Min(axis)
		s.BoundingBox.Max[d] = floats.Max(axis)
	}

	speeds := make([]float64, 0, vf.NumNodes)
	for i := 0; i < vf.NumNodes; i++ {
		s2, err := vf.SpeedSquared(i)
		if err != nil {
			return nil, err
		}
		if isStationary(s2) {
			s.NumAtRest++
		}
		if math.IsNaN(s2) {
			s.HasNaNSpeeds = true
			continue
		}
		speeds = append(speeds, math.Sqrt(s2))
	}
	if len(speeds) > 0 {
		s.SpeedRange = &Range{Min: floats.Min(speeds), Max: floats.Max(speeds)}
	}
	return s, nil
}

func (s *Summary) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// WriteFile writes the summary as YAML
func (s *Summary) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return mesh.NewIOError("write summary", path, fmt.Errorf("marshal: %w", err))
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return mesh.NewIOError("write summary", path, err)
	}
	return nil
}

// Parse reads a summary previously written by WriteFile
func Parse(data []byte) (*Summary, error) {
	s := &Summary{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}
