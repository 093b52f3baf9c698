// Profiling:
// go build ./profile/dispatch
// ./dispatch -scenario ticks.yaml
// go tool pprof -http=":8000" -nodefraction=0.001 ./dispatch cpu.pprof

package main

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/edwinsyarief/slotecs"
	"github.com/edwinsyarief/slotecs/profile/scenario"
)

type position struct {
	X, Y, Z float64
}

type velocity struct {
	X, Y, Z float64
}

type lifetime struct {
	Ticks int
}

const eventStep = slotecs.EventUser

func main() {
	path := flag.String("scenario", "", "YAML scenario file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	sc := scenario.Default("dispatch")
	if *path != "" {
		var err error
		if sc, err = scenario.Load(*path, "dispatch"); err != nil {
			logger.Fatal().Err(err).Msg("cannot load scenario")
		}
	}

	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	rep := run(sc, logger)
	p.Stop()

	if err := scenario.Write(os.Stdout, rep); err != nil {
		logger.Fatal().Err(err).Msg("cannot write report")
	}
}

func run(sc scenario.Scenario, logger zerolog.Logger) scenario.Report {
	start := time.Now()
	rep := scenario.Report{Scenario: sc}
	var w *slotecs.World
	for range sc.Rounds {
		w = slotecs.NewWorld(
			slotecs.WithInitialCapacity(sc.InitialCapacity),
			slotecs.WithLogger(logger.Level(zerolog.InfoLevel)),
		)
		slotecs.Subscribe(w.Bus(), func(slotecs.CapacityGrown) { rep.Grown++ })
		slotecs.Register(w, slotecs.System[velocity]{})
		slotecs.Register(w, slotecs.System[position]{
			Custom: map[slotecs.Event]slotecs.Handler[position]{
				eventStep: func(w *slotecs.World, e slotecs.Entity, p *position) {
					if !slotecs.HasComponent[velocity](w, e) {
						return
					}
					v := slotecs.GetComponent[velocity](w, e)
					p.X += v.X
					p.Y += v.Y
					p.Z += v.Z
				},
			},
		})
		slotecs.Register(w, slotecs.System[lifetime]{
			Tick: func(_ *slotecs.World, _ slotecs.Entity, l *lifetime) { l.Ticks++ },
		})

		for i := range sc.Entities {
			e := w.CreateEntity()
			slotecs.AddComponent(w, e, position{})
			if sc.DeleteEvery == 0 || i%sc.DeleteEvery == 0 {
				slotecs.AddComponent(w, e, velocity{X: 1, Y: 0.5})
			}
			slotecs.AttachComponent[lifetime](w, e)
		}
		for range sc.Iters {
			w.Broadcast(slotecs.EventTick)
			w.Broadcast(eventStep)
		}
		slotecs.LogComponents(w.Logger(), w, zerolog.DebugLevel)
	}
	rep.Elapsed = time.Since(start)
	rep.Final = w.Stats()
	return rep
}
