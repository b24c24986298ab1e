package scenario

import (
	"fmt"

	"github.com/gekko3d/kinematic"
	"github.com/gekko3d/kinematic/collide"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the observable state after one tick.
type Frame struct {
	Tick             int
	Position         mgl32.Vec3
	Ground           kinematic.GroundState
	VerticalVelocity float32
	SlopeVelocity    mgl32.Vec3
	Signals          kinematic.AnimationSignals
}

type Result struct {
	Frames []Frame
}

func (r Result) Last() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// Run simulates sc with cfg. When every > 0 a summary line is logged every that many ticks.
func Run(sc *Scenario, cfg kinematic.Config, logger kinematic.Logger, every int) (Result, error) {
	world, err := sc.BuildWorld()
	if err != nil {
		return Result{}, err
	}
	body := collide.NewBody(world, cfg.Geometry, sc.Start, cfg.Physics.GroundLayers, sc.Dt)
	ctrl, err := kinematic.NewController(cfg, world, body, kinematic.WithLogger(logger))
	if err != nil {
		return Result{}, fmt.Errorf("run %q: %w", sc.Name, err)
	}

	logger.Infof("scenario %q: %d ticks at dt=%.4f, %d colliders", sc.Name, sc.Ticks, sc.Dt, world.Len())

	res := Result{Frames: make([]Frame, 0, sc.Ticks)}
	for tick := 0; tick < sc.Ticks; tick++ {
		in := sc.InputAt(tick)
		ctrl.Tick(&in, sc.CameraYaw, sc.Dt)

		st := ctrl.State()
		f := Frame{
			Tick:             tick,
			Position:         body.Position(),
			Ground:           ctrl.Ground(),
			VerticalVelocity: st.VerticalVelocity,
			SlopeVelocity:    st.SlopeVelocity,
			Signals:          ctrl.Signals(),
		}
		res.Frames = append(res.Frames, f)

		if every > 0 && tick%every == 0 {
			logger.Infof("tick %4d pos=(%.3f %.3f %.3f) %-10s vy=%7.3f slide=%.3f",
				tick, f.Position.X(), f.Position.Y(), f.Position.Z(),
				f.Ground.Reason, f.VerticalVelocity, f.SlopeVelocity.Len())
		}
	}
	return res, nil
}
