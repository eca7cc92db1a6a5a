package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/notargets/bdelements/DG3D/boundary"
	"github.com/notargets/bdelements/DG3D/mesh"
	"github.com/notargets/bdelements/DG3D/mesh/readers"
	"github.com/notargets/bdelements/DG3D/mesh/writers"
	"github.com/notargets/bdelements/InputParameters"
	"github.com/notargets/bdelements/report"
	"github.com/notargets/bdelements/utils"
)

// Result describes a completed run. The mesh, velocity and flag arrays are
// not retained.
type Result struct {
	NumNodes    int
	NumElements int
	NumBoundary int
	Timestamp   float64
	OutputFile  string
	SummaryFile string
	Stages      []StageTiming
}

type StageTiming struct {
	Name    string
	Elapsed time.Duration
}

// Run loads the mesh and velocity snapshot named by ip, classifies every
// element and writes the flag file. Stages run strictly in order and the
// first failure is returned; nothing is written unless every read succeeded.
func Run(ip *InputParameters.RunParameters, log zerolog.Logger) (*Result, error) {
	if err := ip.Validate(); err != nil {
		return nil, err
	}
	order, err := ip.Order()
	if err != nil {
		return nil, err
	}

	res := &Result{OutputFile: ip.FlagsFile()}
	stage := func(name string, fn func() error) error {
		start := time.Now()
		log.Debug().Str("stage", name).Msg("starting")
		if err := fn(); err != nil {
			return err
		}
		res.Stages = append(res.Stages, StageTiming{Name: name, Elapsed: time.Since(start)})
		return nil
	}

	var (
		m     *mesh.Mesh
		vf    *mesh.VelocityField
		flags *mesh.ElementFlags
	)
	if err = stage("load mesh", func() (err error) {
		if m, err = readers.ReadMesh(ip.FilePrefix, order); err == nil {
			log.Debug().Str("mesh", m.Statistics()).Str("memory", utils.GetMemUsage()).Msg("mesh loaded")
		}
		return
	}); err != nil {
		return nil, err
	}

	if err = stage("load velocity", func() (err error) {
		if vf, err = readers.ReadVelocityFile(ip.VelocityFile(), m.NumVertices, order); err == nil {
			log.Debug().Float64("timestamp", vf.Timestamp).Str("memory", utils.GetMemUsage()).
				Msg("velocity loaded")
			if vf.HasNaN() {
				log.Warn().Str("file", ip.VelocityFile()).
					Msg("velocity field contains NaN components, those nodes are never counted as stationary")
			}
		}
		return
	}); err != nil {
		return nil, err
	}

	if err = stage("classify", func() (err error) {
		flags, err = boundary.Classify(m, vf, ip.ND)
		return
	}); err != nil {
		return nil, err
	}

	if err = stage("write flags", func() error {
		return writers.WriteFlagsFile(res.OutputFile, flags, order)
	}); err != nil {
		return nil, err
	}

	if ip.SummaryFile != "" {
		if err = stage("write summary", func() error {
			s, err := report.Build(*ip, m, vf, flags, boundary.IsStationary)
			if err != nil {
				return err
			}
			return s.WriteFile(ip.SummaryFile)
		}); err != nil {
			return nil, err
		}
		res.SummaryFile = ip.SummaryFile
	}

	res.NumNodes = m.NumVertices
	res.NumElements = m.NumElements
	res.NumBoundary = flags.NumBoundary()
	res.Timestamp = vf.Timestamp

	event := log.Info().
		Int("nodes", res.NumNodes).
		Int("elements", res.NumElements).
		Int("boundaryElements", res.NumBoundary).
		Float64("timestamp", res.Timestamp).
		Str("output", res.OutputFile)
	for _, st := range res.Stages {
		event = event.Dur(st.Name, st.Elapsed)
	}
	event.Msg("boundary element flags written")
	return res, nil
}
