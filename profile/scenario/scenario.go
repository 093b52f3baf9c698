// Package scenario describes workloads for the profiling commands and writes
// their reports.
package scenario

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/edwinsyarief/slotecs"
)

// Scenario is one profiling workload, usually read from a YAML file:
//
//	name: churn
//	rounds: 50
//	iters: 1000
//	entities: 1000
//	initial_capacity: 64
//	delete_every: 2
type Scenario struct {
	Name            string `yaml:"name" json:"name"`
	Rounds          int    `yaml:"rounds" json:"rounds"`
	Iters           int    `yaml:"iters" json:"iters"`
	Entities        int    `yaml:"entities" json:"entities"`
	InitialCapacity int    `yaml:"initial_capacity" json:"initial_capacity"`
	DeleteEvery     int    `yaml:"delete_every" json:"delete_every"`
}

// Default is used when no scenario file is given.
func Default(name string) Scenario {
	return Scenario{
		Name:            name,
		Rounds:          50,
		Iters:           1000,
		Entities:        1000,
		InitialCapacity: slotecs.DefaultCapacity,
		DeleteEvery:     2,
	}
}

// Load reads a scenario from path. Missing fields keep the values of Default.
func Load(path, name string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, eris.Wrapf(err, "failed to open scenario %s", path)
	}
	defer f.Close()
	return Decode(f, name)
}

// Decode parses a YAML scenario from r on top of Default(name).
func Decode(r io.Reader, name string) (Scenario, error) {
	s := Default(name)
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, eris.Wrap(err, "failed to decode scenario")
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate rejects non-positive sizes.
func (s Scenario) Validate() error {
	switch {
	case s.Rounds <= 0:
		return eris.Errorf("scenario %q: rounds must be positive", s.Name)
	case s.Iters <= 0:
		return eris.Errorf("scenario %q: iters must be positive", s.Name)
	case s.Entities <= 0:
		return eris.Errorf("scenario %q: entities must be positive", s.Name)
	case s.InitialCapacity <= 0:
		return eris.Errorf("scenario %q: initial_capacity must be positive", s.Name)
	case s.DeleteEvery < 0:
		return eris.Errorf("scenario %q: delete_every must not be negative", s.Name)
	}
	return nil
}

// Report is written after a run.
type Report struct {
	Scenario Scenario      `json:"scenario"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Grown    int           `json:"grown"`
	Final    slotecs.Stats `json:"final"`
}

// Write encodes rep as indented JSON.
func Write(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return eris.Wrap(err, "failed to encode report")
	}
	return nil
}
