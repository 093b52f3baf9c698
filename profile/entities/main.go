// Profiling:
// go build ./profile/entities
// ./entities -scenario churn.yaml
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

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

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	path := flag.String("scenario", "", "YAML scenario file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	sc := scenario.Default("entities")
	if *path != "" {
		var err error
		if sc, err = scenario.Load(*path, "entities"); err != nil {
			logger.Fatal().Err(err).Msg("cannot load scenario")
		}
	}

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	rep := run(sc)
	p.Stop()

	if err := scenario.Write(os.Stdout, rep); err != nil {
		logger.Fatal().Err(err).Msg("cannot write report")
	}
}

func run(sc scenario.Scenario) scenario.Report {
	start := time.Now()
	rep := scenario.Report{Scenario: sc}
	var w *slotecs.World
	for range sc.Rounds {
		w = slotecs.NewWorld(slotecs.WithInitialCapacity(sc.InitialCapacity))
		slotecs.Subscribe(w.Bus(), func(slotecs.CapacityGrown) { rep.Grown++ })
		slotecs.Register(w, slotecs.System[comp1]{})
		slotecs.Register(w, slotecs.System[comp2]{})
		query := slotecs.NewQuery[comp1](w)

		for range sc.Iters {
			for range sc.Entities {
				e := w.CreateEntity()
				slotecs.AddComponent(w, e, comp1{V: 1})
				slotecs.AddComponent(w, e, comp2{V: 2, W: 3})
			}
			var entities []slotecs.Entity
			for query.Reset(); query.Next(); {
				e := query.Entity()
				c1, c2 := query.Get(), slotecs.GetComponent[comp2](w, e)
				c1.V += c2.V
				c1.W += c2.W
				entities = append(entities, e)
			}
			for i, e := range entities {
				if sc.DeleteEvery == 0 || i%sc.DeleteEvery == 0 {
					w.DeleteEntity(e)
				}
			}
			w.Clear()
		}
	}
	rep.Elapsed = time.Since(start)
	rep.Final = w.Stats()
	return rep
}
