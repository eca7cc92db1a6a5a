package mesh

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Input and output files share a prefix, following the flowVC naming convention
func CoordinatesFile(prefix string) string  { return prefix + "_coordinates.bin" }
func ConnectivityFile(prefix string) string { return prefix + "_connectivity.bin" }
func FlagsFile(prefix string) string        { return prefix + "_bflags.bin" }

func VelocityFile(prefix string, timeStep int) string {
	return fmt.Sprintf("%s_vel.%d.bin", prefix, timeStep)
}

// ParseByteOrder maps "native" (or ""), "little" and "big" to a byte order.
// Files written by the flowVC tools use the native order of the host.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "native":
		return binary.NativeEndian, nil
	case "little", "littleendian", "le":
		return binary.LittleEndian, nil
	case "big", "bigendian", "be":
		return binary.BigEndian, nil
	}
	return nil, NewArgumentError("parse byte order",
		fmt.Errorf("unknown byte order %q, want native, little or big", name))
}
