package readers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/bdelements/DG3D/mesh"
	"github.com/notargets/bdelements/DG3D/mesh/writers"
)

var order = binary.NativeEndian

// encode writes each value with binary.Write, mirroring how the flowVC tools
// emit records
func encode(t *testing.T, values ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, v := range values {
		require.NoError(t, binary.Write(&buf, order, v))
	}
	return &buf
}

func TestReadCoordinates(t *testing.T) {
	buf := encode(t, int32(2), [3]float64{1, 2, 3}, [3]float64{-4, 5.5, 6})
	coords, err := ReadCoordinates(buf, order)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, -4, 5.5, 6}, coords)
}

func TestReadCoordinates_ShortRecord(t *testing.T) {
	buf := encode(t, int32(3), [3]float64{1, 2, 3}, [2]float64{4, 5})
	_, err := ReadCoordinates(buf, order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrShortRead))
	assert.Equal(t, mesh.KindIO, mesh.KindOf(err))
	assert.Contains(t, err.Error(), "coordinates[1] of 3")
}

func TestReadCoordinates_EmptyFile(t *testing.T) {
	_, err := ReadCoordinates(&bytes.Buffer{}, order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrShortRead))
	assert.Contains(t, err.Error(), "number of nodes")
}

func TestReadCoordinates_NegativeCount(t *testing.T) {
	_, err := ReadCoordinates(encode(t, int32(-1)), order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrNegativeCount))
	assert.Equal(t, mesh.KindIO, mesh.KindOf(err))
}

func TestReadConnectivity(t *testing.T) {
	buf := encode(t, int32(2), [4]int32{0, 1, 2, 3}, [4]int32{1, 2, 3, 4})
	etov, err := ReadConnectivity(buf, order)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2, 3, 1, 2, 3, 4}, etov)
}

// Header declares two elements but only one full record follows
func TestReadConnectivity_ShortRecord(t *testing.T) {
	buf := encode(t, int32(2), [4]int32{0, 1, 2, 3}, [2]int32{1, 2})
	_, err := ReadConnectivity(buf, order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrShortRead))
	assert.Equal(t, mesh.KindIO, mesh.KindOf(err))
	assert.Contains(t, err.Error(), "connectivity[1] of 2")
}

// Large enough to cross several decode chunks
func TestReadConnectivity_ManyRecords(t *testing.T) {
	const n = 3*chunkRecords + 17
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, order, int32(n)))
	want := make([]int32, 0, 4*n)
	for k := 0; k < n; k++ {
		rec := [4]int32{int32(k), int32(k + 1), int32(k + 2), int32(k + 3)}
		want = append(want, rec[:]...)
		require.NoError(t, binary.Write(&buf, order, rec))
	}
	full := buf.Bytes()

	etov, err := ReadConnectivity(bytes.NewReader(full), order)
	require.NoError(t, err)
	assert.Equal(t, want, etov)

	// Drop the last two values: the final record is the one reported
	_, err = ReadConnectivity(bytes.NewReader(full[:len(full)-8]), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connectivity[12304] of 12305")
}

func TestReadVelocity(t *testing.T) {
	buf := encode(t, 1.75, [3]float64{0, 0, 0}, [3]float64{1, 2, 3})
	vf, err := ReadVelocity(buf, 2, order)
	require.NoError(t, err)
	assert.Equal(t, 1.75, vf.Timestamp)
	assert.Equal(t, 2, vf.NumNodes)
	uvw, err := vf.Velocity(1)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 2, 3}, uvw)
}

// Fewer velocity records than the mesh has nodes
func TestReadVelocity_ShortRead(t *testing.T) {
	buf := encode(t, 1.75, [3]float64{0, 0, 0}, [3]float64{1, 2, 3})
	_, err := ReadVelocity(buf, 4, order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrShortRead))
	assert.Equal(t, mesh.KindIO, mesh.KindOf(err))
	assert.Contains(t, err.Error(), "velocity[2] of 4")
}

func TestReadVelocity_MissingTimestamp(t *testing.T) {
	_, err := ReadVelocity(bytes.NewReader([]byte{1, 2, 3}), 0, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time stamp")
	assert.Equal(t, mesh.KindIO, mesh.KindOf(err))
}

func TestReadVelocity_NegativeNodeCount(t *testing.T) {
	_, err := ReadVelocity(encode(t, 0.0), -2, order)
	require.Error(t, err)
	assert.Equal(t, mesh.KindArgument, mesh.KindOf(err))
}

func TestReadMesh_FromFiles(t *testing.T) {
	tm := mesh.GetStandardTestMeshes()
	want := tm.TwoTet.Mesh()
	prefix := filepath.Join(t.TempDir(), "twotet")
	require.NoError(t, writers.WriteDataset(prefix, 3, want,
		tm.TwoTet.VelocityField("wallAtOrigin", 0.5), order))

	m, err := ReadMesh(prefix, order)
	require.NoError(t, err)
	assert.Equal(t, want.NumVertices, m.NumVertices)
	assert.Equal(t, want.NumElements, m.NumElements)
	for k := 0; k < m.NumElements; k++ {
		got, err := m.ElementNodes(k)
		require.NoError(t, err)
		exp, _ := want.ElementNodes(k)
		assert.Equal(t, exp, got)
	}
	xyz, err := m.Coordinate(4)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 1, 1}, xyz)

	vf, err := ReadVelocityFile(mesh.VelocityFile(prefix, 3), m.NumVertices, order)
	require.NoError(t, err)
	assert.Equal(t, 0.5, vf.Timestamp)
	assert.Equal(t, m.NumVertices, vf.NumNodes)
}

func TestReadMesh_MissingFiles(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "absent")
	_, err := ReadMesh(prefix, order)
	require.Error(t, err)
	assert.Equal(t, mesh.KindIO, mesh.KindOf(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), mesh.CoordinatesFile(prefix))

	// Coordinates present, connectivity missing
	require.NoError(t, os.WriteFile(mesh.CoordinatesFile(prefix), encode(t, int32(0)).Bytes(), 0o644))
	_, err = ReadMesh(prefix, order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), mesh.ConnectivityFile(prefix))
}

func TestReadMesh_TruncatedConnectivityNamesFile(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "trunc")
	require.NoError(t, os.WriteFile(mesh.CoordinatesFile(prefix),
		encode(t, int32(1), [3]float64{0, 0, 0}).Bytes(), 0o644))
	require.NoError(t, os.WriteFile(mesh.ConnectivityFile(prefix),
		encode(t, int32(2), [4]int32{0, 0, 0, 0}).Bytes(), 0o644))

	_, err := ReadMesh(prefix, order)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrShortRead))
	assert.Equal(t, "read connectivity: "+mesh.ConnectivityFile(prefix)+
		": short read: could not read connectivity[1] of 2: unexpected EOF", err.Error())
}

func TestReadFlagsFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt_bflags.bin")
	counts := []int32{4, 0, 2}
	require.NoError(t, writers.WriteFlagsFile(path, mesh.NewElementFlags(counts), order))
	flags, err := ReadFlagsFile(path, order)
	require.NoError(t, err)
	assert.Equal(t, counts, flags.Values())

	_, err = ReadFlags(encode(t, int32(2), int32(1)), order)
	assert.True(t, errors.Is(err, mesh.ErrShortRead))
}

func TestReadCoordinates_ByteOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, int32(1)))
	require.NoError(t, binary.Write(&buf, binary.BigEndian, [3]float64{1, 2, 3}))
	coords, err := ReadCoordinates(bytes.NewReader(buf.Bytes()), binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, coords)
}
