package mesh

import (
	"fmt"

	"github.com/notargets/bdelements/utils"
)

// VelocityField is one time-stamped nodal velocity snapshot, index aligned
// with the coordinates of the mesh it was read for
type VelocityField struct {
	Timestamp float64
	NumNodes  int

	vel []float64 // [NumNodes*3], u v w per node
}

// NewVelocityField takes ownership of vel (3 values per node)
func NewVelocityField(timestamp float64, vel []float64) (*VelocityField, error) {
	if len(vel)%3 != 0 {
		return nil, NewArgumentError("new velocity field",
			fmt.Errorf("velocity buffer length %d is not a multiple of 3", len(vel)))
	}
	return &VelocityField{
		Timestamp: timestamp,
		NumNodes:  len(vel) / 3,
		vel:       vel,
	}, nil
}

// Velocity returns the u, v, w components at node i
func (v *VelocityField) Velocity(i int) (uvw [3]float64, err error) {
	if i < 0 || i >= v.NumNodes {
		err = &OutOfRangeError{What: "node", Index: i, Len: v.NumNodes}
		return
	}
	copy(uvw[:], v.vel[3*i:3*i+3])
	return
}

// SpeedSquared returns u*u + v*v + w*w at node i
func (v *VelocityField) SpeedSquared(i int) (float64, error) {
	if i < 0 || i >= v.NumNodes {
		return 0, &OutOfRangeError{What: "node", Index: i, Len: v.NumNodes}
	}
	u, vv, w := v.vel[3*i], v.vel[3*i+1], v.vel[3*i+2]
	return u*u + vv*vv + w*w, nil
}

// HasNaN reports whether any component of the field is NaN
func (v *VelocityField) HasNaN() bool {
	return utils.IsNan(v.vel)
}
