package InputParameters

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/notargets/bdelements/DG3D/boundary"
	"github.com/notargets/bdelements/DG3D/mesh"
)

// Parameters describing one boundary flag run. They are recorded in the run
// summary through ghodss/yaml, which goes through encoding/json, so the json
// tags set the YAML keys.
type RunParameters struct {
	ND          int    `json:"ND"`
	FilePrefix  string `json:"FilePrefix"`
	TimeStep    int    `json:"TimeStep"`
	ByteOrder   string `json:"ByteOrder,omitempty"`
	SummaryFile string `json:"SummaryFile,omitempty"`
}

// Validate rejects any run the tool cannot perform, before a file is opened
func (rp *RunParameters) Validate() error {
	if err := boundary.CheckDimension(rp.ND); err != nil {
		return err
	}
	if rp.FilePrefix == "" {
		return mesh.NewArgumentError("validate parameters", errors.New("empty file prefix"))
	}
	_, err := rp.Order()
	return err
}

// Order returns the byte order the binary files are read and written in
func (rp *RunParameters) Order() (binary.ByteOrder, error) {
	return mesh.ParseByteOrder(rp.ByteOrder)
}

func (rp *RunParameters) CoordinatesFile() string  { return mesh.CoordinatesFile(rp.FilePrefix) }
func (rp *RunParameters) ConnectivityFile() string { return mesh.ConnectivityFile(rp.FilePrefix) }
func (rp *RunParameters) VelocityFile() string {
	return mesh.VelocityFile(rp.FilePrefix, rp.TimeStep)
}
func (rp *RunParameters) FlagsFile() string { return mesh.FlagsFile(rp.FilePrefix) }

func (rp *RunParameters) Print(w io.Writer) {
	byteOrder := rp.ByteOrder
	if byteOrder == "" {
		byteOrder = "native"
	}
	fmt.Fprintf(w, "[%d]\t\t\t\t= ND\n", rp.ND)
	fmt.Fprintf(w, "\"%s\"\t\t= File Prefix\n", rp.FilePrefix)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Time Step\n", rp.TimeStep)
	fmt.Fprintf(w, "[%s]\t\t\t= Byte Order\n", byteOrder)
	fmt.Fprintf(w, "%s\t= Coordinates\n", rp.CoordinatesFile())
	fmt.Fprintf(w, "%s\t= Connectivity\n", rp.ConnectivityFile())
	fmt.Fprintf(w, "%s\t= Velocity\n", rp.VelocityFile())
	fmt.Fprintf(w, "%s\t= Output\n", rp.FlagsFile())
	if rp.SummaryFile != "" {
		fmt.Fprintf(w, "%s\t= Summary\n", rp.SummaryFile)
	}
}
