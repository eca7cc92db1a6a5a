package writers

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/notargets/bdelements/DG3D/mesh"
)

// WriteDataset writes the coordinate, connectivity and velocity files that
// the readers consume, under the given prefix and time step
func WriteDataset(prefix string, timeStep int, m *mesh.Mesh, vf *mesh.VelocityField,
	order binary.ByteOrder) error {
	if err := writeFile(mesh.CoordinatesFile(prefix), func(w io.Writer) error {
		return WriteCoordinates(w, m, order)
	}); err != nil {
		return err
	}
	if err := writeFile(mesh.ConnectivityFile(prefix), func(w io.Writer) error {
		return WriteConnectivity(w, m, order)
	}); err != nil {
		return err
	}
	return writeFile(mesh.VelocityFile(prefix, timeStep), func(w io.Writer) error {
		return WriteVelocity(w, vf, order)
	})
}

// WriteCoordinates writes the int32 node count then (x, y, z) per node
func WriteCoordinates(w io.Writer, m *mesh.Mesh, order binary.ByteOrder) error {
	const op = "write coordinates"
	if err := binary.Write(w, order, int32(m.NumVertices)); err != nil {
		return mesh.NewIOError(op, "", err)
	}
	for i := 0; i < m.NumVertices; i++ {
		xyz, err := m.Coordinate(i)
		if err != nil {
			return err
		}
		if err = binary.Write(w, order, xyz); err != nil {
			return mesh.NewIOError(op, "", fmt.Errorf("coordinates[%d]: %w", i, err))
		}
	}
	return nil
}

// WriteConnectivity writes the int32 element count then the node indices of each element
func WriteConnectivity(w io.Writer, m *mesh.Mesh, order binary.ByteOrder) error {
	const op = "write connectivity"
	if err := binary.Write(w, order, int32(m.NumElements)); err != nil {
		return mesh.NewIOError(op, "", err)
	}
	for k := 0; k < m.NumElements; k++ {
		nodes, err := m.ElementNodes(k)
		if err != nil {
			return err
		}
		if err = binary.Write(w, order, nodes); err != nil {
			return mesh.NewIOError(op, "", fmt.Errorf("connectivity[%d]: %w", k, err))
		}
	}
	return nil
}

// WriteVelocity writes the float64 timestamp then (u, v, w) per node
func WriteVelocity(w io.Writer, vf *mesh.VelocityField, order binary.ByteOrder) error {
	const op = "write velocity"
	if err := binary.Write(w, order, vf.Timestamp); err != nil {
		return mesh.NewIOError(op, "", err)
	}
	for i := 0; i < vf.NumNodes; i++ {
		uvw, err := vf.Velocity(i)
		if err != nil {
			return err
		}
		if err = binary.Write(w, order, uvw); err != nil {
			return mesh.NewIOError(op, "", fmt.Errorf("velocity[%d]: %w", i, err))
		}
	}
	return nil
}
