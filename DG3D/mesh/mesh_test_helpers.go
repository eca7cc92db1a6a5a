package mesh

// TestMeshes provides a collection of standard test meshes and velocity
// snapshots that can be used across the readers, writers and classifier
type TestMeshes struct {
	// Complete mesh definitions
	SingleTet CompleteMesh
	TwoTet    CompleteMesh
}

// CompleteMesh represents a mesh with nodes, elements and named velocity states
type CompleteMesh struct {
	Nodes    [][3]float64
	Elements [][NodesPerElement]int32

	// Nodal velocities keyed by scenario name
	Velocities map[string][][3]float64
}

// GetStandardTestMeshes returns a set of standard test meshes
func GetStandardTestMeshes() *TestMeshes {
	tm := &TestMeshes{}

	tm.SingleTet = CompleteMesh{
		Nodes: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		Elements: [][NodesPerElement]int32{
			{0, 1, 2, 3},
		},
		Velocities: map[string][][3]float64{
			// Only the origin node is at rest
			"oneStationary": {
				{0, 0, 0},
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
			},
			"allStationary": {
				{0, 0, 0},
				{0, 0, 0},
				{0, 0, 0},
				{0, 0, 0},
			},
			"moving": {
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
				{1, 1, 1},
			},
		},
	}

	// Two tets sharing face {1,2,3}
	tm.TwoTet = CompleteMesh{
		Nodes: [][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
			{1, 1, 1},
		},
		Elements: [][NodesPerElement]int32{
			{0, 1, 2, 3},
			{1, 2, 3, 4},
		},
		Velocities: map[string][][3]float64{
			// Node 0 is a wall node and touches only the first tet
			"wallAtOrigin": {
				{0, 0, 0},
				{0.5, 0, 0},
				{0.5, 0, 0},
				{0.5, 0, 0},
				{1, 0, 0},
			},
			// Shared face at rest, apex nodes moving
			"sharedFaceStationary": {
				{1, 0, 0},
				{0, 0, 0},
				{0, 0, 0},
				{0, 0, 0},
				{0, 0, 1},
			},
		},
	}

	return tm
}

// Mesh builds a Mesh from the definition
func (cm CompleteMesh) Mesh() *Mesh {
	coords := make([]float64, 0, 3*len(cm.Nodes))
	for _, n := range cm.Nodes {
		coords = append(coords, n[:]...)
	}
	etov := make([]int32, 0, NodesPerElement*len(cm.Elements))
	for _, e := range cm.Elements {
		etov = append(etov, e[:]...)
	}
	m, err := NewMesh(coords, etov)
	if err != nil {
		panic(err)
	}
	return m
}

// VelocityField builds the named velocity snapshot at the given time
func (cm CompleteMesh) VelocityField(name string, timestamp float64) *VelocityField {
	vels, ok := cm.Velocities[name]
	if !ok {
		panic("unknown velocity scenario " + name)
	}
	return NewTestVelocityField(timestamp, vels)
}

// NewTestVelocityField packs per-node velocities into a VelocityField
func NewTestVelocityField(timestamp float64, vels [][3]float64) *VelocityField {
	buf := make([]float64, 0, 3*len(vels))
	for _, v := range vels {
		buf = append(buf, v[:]...)
	}
	vf, err := NewVelocityField(timestamp, buf)
	if err != nil {
		panic(err)
	}
	return vf
}
