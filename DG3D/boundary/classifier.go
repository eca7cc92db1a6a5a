package boundary

import (
	"errors"
	"fmt"

	"github.com/notargets/bdelements/DG3D/mesh"
)

// Threshold is the squared speed below which a node is considered at rest
const Threshold = 1e-10

var (
	ErrUnsupportedDimension = errors.New("ND = 2 not currently supported")
	ErrInvalidDimension     = errors.New("invalid ND")
)

// CheckDimension accepts only three dimensional runs
func CheckDimension(nd int) error {
	switch nd {
	case 3:
		return nil
	case 2:
		return mesh.NewArgumentError("check dimension", ErrUnsupportedDimension)
	}
	return mesh.NewArgumentError("check dimension", fmt.Errorf("%w: %d", ErrInvalidDimension, nd))
}

// IsStationary applies the strict zero velocity test to a squared speed. NaN
// speeds are never stationary.
func IsStationary(speedSquared float64) bool {
	return speedSquared < Threshold
}

// Classify counts, for every element, how many of its first nd+1 nodes are
// stationary in vf. Node indices are range checked; a bad index fails the
// whole classification with a *mesh.OutOfRangeError naming the element.
func Classify(m *mesh.Mesh, vf *mesh.VelocityField, nd int) (*mesh.ElementFlags, error) {
	const op = "classify"
	if err := CheckDimension(nd); err != nil {
		return nil, err
	}
	if nv := nd + 1; nv > m.Type.NumVertices() {
		return nil, mesh.NewArgumentError(op,
			fmt.Errorf("%s elements have %d vertices, ND = %d needs %d", m.Type, m.Type.NumVertices(), nd, nv))
	}
	if vf.NumNodes != m.NumVertices {
		return nil, mesh.NewArgumentError(op,
			fmt.Errorf("velocity field has %d nodes, mesh has %d", vf.NumNodes, m.NumVertices))
	}

	counts := make([]int32, m.NumElements)
	for k := range counts {
		nodes, err := m.ElementNodes(k)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes[:nd+1] {
			s2, err := vf.SpeedSquared(int(n))
			if err != nil {
				return nil, &mesh.Error{Kind: mesh.KindOutOfRange, Op: op,
					Err: fmt.Errorf("element %d: %w", k, err)}
			}
			if IsStationary(s2) {
				counts[k]++
			}
		}
	}
	return mesh.NewElementFlags(counts), nil
}
