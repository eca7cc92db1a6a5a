package readers

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/notargets/bdelements/DG3D/mesh"
)

// Records are decoded in chunks so a truncated file can be reported by record
// index without buffering the whole file twice
const chunkRecords = 4096

// ReadMesh reads {prefix}_coordinates.bin and {prefix}_connectivity.bin
func ReadMesh(prefix string, order binary.ByteOrder) (*mesh.Mesh, error) {
	coords, err := readFile(mesh.CoordinatesFile(prefix), func(r io.Reader) ([]float64, error) {
		return ReadCoordinates(r, order)
	})
	if err != nil {
		return nil, err
	}
	etov, err := readFile(mesh.ConnectivityFile(prefix), func(r io.Reader) ([]int32, error) {
		return ReadConnectivity(r, order)
	})
	if err != nil {
		return nil, err
	}
	return mesh.NewMesh(coords, etov)
}

// ReadCoordinates reads an int32 node count followed by that many
// (x, y, z) float64 records. Record position is the node index.
func ReadCoordinates(r io.Reader, order binary.ByteOrder) ([]float64, error) {
	const op = "read coordinates"
	n, err := readCount(r, order, op, "number of nodes")
	if err != nil {
		return nil, err
	}
	coords, err := allocate[float64](op, n, 3)
	if err != nil {
		return nil, err
	}
	if rec, err := readFloat64s(r, order, coords, 3); err != nil {
		return nil, shortRead(op, fmt.Sprintf("coordinates[%d] of %d", rec, n), err)
	}
	return coords, nil
}

// ReadConnectivity reads an int32 element count followed by that many records
// of mesh.NodesPerElement int32 node indices. Indices are not range checked here.
func ReadConnectivity(r io.Reader, order binary.ByteOrder) ([]int32, error) {
	const op = "read connectivity"
	n, err := readCount(r, order, op, "number of elements")
	if err != nil {
		return nil, err
	}
	etov, err := allocate[int32](op, n, mesh.NodesPerElement)
	if err != nil {
		return nil, err
	}
	if rec, err := readInt32s(r, order, etov, mesh.NodesPerElement); err != nil {
		return nil, shortRead(op, fmt.Sprintf("connectivity[%d] of %d", rec, n), err)
	}
	return etov, nil
}

// ReadVelocityFile reads a velocity snapshot for nodeCount nodes from path.
// Use mesh.VelocityFile to build the path for a time step.
func ReadVelocityFile(path string, nodeCount int, order binary.ByteOrder) (*mesh.VelocityField, error) {
	return readFile(path, func(r io.Reader) (*mesh.VelocityField, error) {
		return ReadVelocity(r, nodeCount, order)
	})
}

// ReadVelocity reads a float64 timestamp followed by nodeCount (u, v, w)
// float64 records in node order
func ReadVelocity(r io.Reader, nodeCount int, order binary.ByteOrder) (*mesh.VelocityField, error) {
	const op = "read velocity"
	if nodeCount < 0 {
		return nil, mesh.NewArgumentError(op, fmt.Errorf("%w: %d nodes", mesh.ErrNegativeCount, nodeCount))
	}
	var timestamp float64
	if err := binary.Read(r, order, &timestamp); err != nil {
		return nil, shortRead(op, "time stamp", err)
	}
	vel, err := allocate[float64](op, nodeCount, 3)
	if err != nil {
		return nil, err
	}
	if rec, err := readFloat64s(r, order, vel, 3); err != nil {
		return nil, shortRead(op, fmt.Sprintf("velocity[%d] of %d", rec, nodeCount), err)
	}
	return mesh.NewVelocityField(timestamp, vel)
}

// ReadFlagsFile reads a {prefix}_bflags.bin file
func ReadFlagsFile(path string, order binary.ByteOrder) (*mesh.ElementFlags, error) {
	return readFile(path, func(r io.Reader) (*mesh.ElementFlags, error) {
		return ReadFlags(r, order)
	})
}

// ReadFlags reads an int32 element count followed by one int32 count per element
func ReadFlags(r io.Reader, order binary.ByteOrder) (*mesh.ElementFlags, error) {
	const op = "read flags"
	n, err := readCount(r, order, op, "number of elements")
	if err != nil {
		return nil, err
	}
	counts, err := allocate[int32](op, n, 1)
	if err != nil {
		return nil, err
	}
	if rec, err := readInt32s(r, order, counts, 1); err != nil {
		return nil, shortRead(op, fmt.Sprintf("flag[%d] of %d", rec, n), err)
	}
	return mesh.NewElementFlags(counts), nil
}

// readFile opens path, hands a buffered reader to read and closes the file on
// every path out
func readFile[T any](path string, read func(io.Reader) (T, error)) (result T, err error) {
	file, err := os.Open(path)
	if err != nil {
		err = mesh.NewIOError("open", path, err)
		return
	}
	defer file.Close()

	if result, err = read(bufio.NewReader(file)); err != nil {
		err = mesh.WithPath(err, path)
	}
	return
}

func readCount(r io.Reader, order binary.ByteOrder, op, what string) (int, error) {
	var n int32
	if err := binary.Read(r, order, &n); err != nil {
		return 0, shortRead(op, what, err)
	}
	if n < 0 {
		return 0, mesh.NewIOError(op, "", fmt.Errorf("%w: %s is %d", mesh.ErrNegativeCount, what, n))
	}
	return int(n), nil
}

// allocate returns a zeroed buffer of n records of width values, or an
// AllocationError if the size cannot be represented
func allocate[T float64 | int32](op string, n, width int) ([]T, error) {
	if n > math.MaxInt/width/8 {
		return nil, &mesh.Error{Kind: mesh.KindAllocation, Op: op,
			Err: fmt.Errorf("cannot allocate %d records of %d values", n, width)}
	}
	return make([]T, n*width), nil
}

func shortRead(op, what string, err error) error {
	return mesh.NewIOError(op, "", fmt.Errorf("%w: could not read %s: %w", mesh.ErrShortRead, what, err))
}

// readFloat64s fills dst with records of width values. On failure it returns
// the index of the first record that could not be read completely.
func readFloat64s(r io.Reader, order binary.ByteOrder, dst []float64, width int) (int, error) {
	const size = 8
	buf := make([]byte, min(len(dst)/width, chunkRecords)*width*size)
	for off := 0; off < len(dst); {
		nv := min(len(dst)-off, len(buf)/size)
		got, err := io.ReadFull(r, buf[:nv*size])
		if err != nil {
			return (off + got/size) / width, err
		}
		for i := 0; i < nv; i++ {
			dst[off+i] = math.Float64frombits(order.Uint64(buf[i*size:]))
		}
		off += nv
	}
	return len(dst) / width, nil
}

// readInt32s is readFloat64s for int32 records
func readInt32s(r io.Reader, order binary.ByteOrder, dst []int32, width int) (int, error) {
	const size = 4
	buf := make([]byte, min(len(dst)/width, chunkRecords)*width*size)
	for off := 0; off < len(dst); {
		nv := min(len(dst)-off, len(buf)/size)
		got, err := io.ReadFull(r, buf[:nv*size])
		if err != nil {
			return (off + got/size) / width, err
		}
		for i := 0; i < nv; i++ {
			dst[off+i] = int32(order.Uint32(buf[i*size:]))
		}
		off += nv
	}
	return len(dst) / width, nil
}
