package mesh

import (
	"fmt"
)

// ElementType represents different element types
type ElementType int

const (
	Line ElementType = iota
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

func (e ElementType) String() string {
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex", "Prism", "Pyramid"}[e]
}

// NumVertices returns the number of corner nodes of the element type
func (e ElementType) NumVertices() int {
	return [...]int{2, 3, 4, 4, 8, 6, 5}[e]
}

// NodesPerElement is the fixed connectivity record width. Records are always
// tetrahedral, independent of the spatial dimension of the run.
const NodesPerElement = 4

// Mesh is an unstructured tetrahedral mesh held in two contiguous buffers
type Mesh struct {
	Type        ElementType
	NumVertices int
	NumElements int

	coords []float64 // [NumVertices*3], x y z per node
	etov   []int32   // [NumElements*NodesPerElement], element to vertex
}

// NewMesh takes ownership of coords (3 values per node) and etov
// (NodesPerElement node indices per element)
func NewMesh(coords []float64, etov []int32) (*Mesh, error) {
	if len(coords)%3 != 0 {
		return nil, NewArgumentError("new mesh",
			fmt.Errorf("coordinate buffer length %d is not a multiple of 3", len(coords)))
	}
	if len(etov)%NodesPerElement != 0 {
		return nil, NewArgumentError("new mesh",
			fmt.Errorf("connectivity buffer length %d is not a multiple of %d",
				len(etov), NodesPerElement))
	}
	return &Mesh{
		Type:        Tet,
		NumVertices: len(coords) / 3,
		NumElements: len(etov) / NodesPerElement,
		coords:      coords,
		etov:        etov,
	}, nil
}

// Coordinate returns the x, y, z position of node i
func (m *Mesh) Coordinate(i int) (xyz [3]float64, err error) {
	if i < 0 || i >= m.NumVertices {
		err = &OutOfRangeError{What: "node", Index: i, Len: m.NumVertices}
		return
	}
	copy(xyz[:], m.coords[3*i:3*i+3])
	return
}

// ElementNodes returns the node indices of element k in file order
func (m *Mesh) ElementNodes(k int) (nodes [NodesPerElement]int32, err error) {
	if k < 0 || k >= m.NumElements {
		err = &OutOfRangeError{What: "element", Index: k, Len: m.NumElements}
		return
	}
	copy(nodes[:], m.etov[NodesPerElement*k:NodesPerElement*(k+1)])
	return
}

// Axis returns a copy of one coordinate component (0=x, 1=y, 2=z) for all nodes
func (m *Mesh) Axis(d int) ([]float64, error) {
	if d < 0 || d > 2 {
		return nil, &OutOfRangeError{What: "axis", Index: d, Len: 3}
	}
	out := make([]float64, m.NumVertices)
	for i := range out {
		out[i] = m.coords[3*i+d]
	}
	return out, nil
}

// Statistics returns a one line description of the mesh
func (m *Mesh) Statistics() string {
	return fmt.Sprintf("%s mesh: %d vertices, %d elements",
		m.Type, m.NumVertices, m.NumElements)
}
