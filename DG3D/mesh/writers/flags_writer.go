package writers

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/notargets/bdelements/DG3D/mesh"
)

// WriteFlagsFile creates (or truncates) path and writes flags to it. A write
// that fails part way leaves the partial file in place.
func WriteFlagsFile(path string, flags *mesh.ElementFlags, order binary.ByteOrder) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteFlags(w, flags, order)
	})
}

// WriteFlags writes the int32 element count followed by the int32 count of
// every element, in element order
func WriteFlags(w io.Writer, flags *mesh.ElementFlags, order binary.ByteOrder) error {
	const op = "write flags"
	if err := binary.Write(w, order, int32(flags.Len())); err != nil {
		return mesh.NewIOError(op, "", err)
	}
	if flags.Len() == 0 {
		return nil
	}
	if err := binary.Write(w, order, flags.Values()); err != nil {
		return mesh.NewIOError(op, "", err)
	}
	return nil
}

// writeFile creates path, hands a buffered writer to write, then flushes and
// closes, reporting the first error seen
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return mesh.NewIOError("open", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = mesh.NewIOError("close", path, cerr)
		}
	}()

	bw := bufio.NewWriter(file)
	if err = write(bw); err != nil {
		return mesh.WithPath(err, path)
	}
	if err = bw.Flush(); err != nil {
		return mesh.NewIOError("flush", path, err)
	}
	return nil
}
