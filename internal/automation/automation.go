// Package automation runs scripted batches of sweeps and parameter studies.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/eos/internal/eos"
	"github.com/san-kum/eos/internal/field"
	"github.com/san-kum/eos/internal/fluids"
	"github.com/san-kum/eos/internal/sweep"
)

var ErrBadStep = errors.New("automation: bad step")

// Scenario is a named list of sweeps loaded from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one sweep. Vary and Fixed are ignored for one-input
// domains.
type ScenarioStep struct {
	Name       string   `yaml:"name"`
	Model      string   `yaml:"model"`
	Args       []string `yaml:"args"`
	Domain     string   `yaml:"domain"`
	Vary       string   `yaml:"vary"`
	From       float64  `yaml:"from"`
	To         float64  `yaml:"to"`
	Points     int      `yaml:"points"`
	Log        bool     `yaml:"log"`
	Fixed      float64  `yaml:"fixed"`
	Properties []string `yaml:"properties"`
	Save       bool     `yaml:"save"`
}

// Options are shared by every step of a run.
type Options struct {
	Numerics eos.Numerics
	Workers  int
	MinChunk int
	Log      logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Log == nil {
		return logrus.StandardLogger()
	}
	return o.Log
}

func (o Options) engine(model string, args []string) (*eos.Engine, error) {
	m, err := fluids.Open(model, args)
	if err != nil {
		return nil, err
	}
	return eos.New(m, eos.WithNumerics(o.Numerics), eos.WithLogger(o.logger())), nil
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step   ScenarioStep
	Engine *eos.Engine
	Result *sweep.Result
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", ErrBadStep, scenario.Name)
	}
	return &scenario, nil
}

func (s ScenarioStep) spec() (sweep.Spec, error) {
	dom, err := eos.ParseDomain(s.Domain)
	if err != nil {
		return sweep.Spec{}, err
	}
	spec := sweep.Spec{
		Domain:     dom,
		From:       s.From,
		To:         s.To,
		Points:     s.Points,
		Log:        s.Log,
		Fixed:      s.Fixed,
		Properties: s.Properties,
	}
	if !dom.OneInput() {
		if spec.Vary, err = eos.ParseProperty(s.Vary); err != nil {
			return sweep.Spec{}, err
		}
	}
	return spec, nil
}

// RunScenario executes the steps in order. It stops at the first failing
// step or when ctx is done, returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, opts Options) ([]StepResult, error) {
	log := opts.logger()
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		log.WithFields(logrus.Fields{
			"step":  i + 1,
			"of":    len(scenario.Steps),
			"name":  step.Name,
			"model": step.Model,
		}).Info("running step")

		spec, err := step.spec()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		eng, err := opts.engine(step.Model, step.Args)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		d := field.NewDispatcher(eng)
		d.Log = log
		if opts.Workers > 0 {
			d.Workers = opts.Workers
		}
		if opts.MinChunk > 0 {
			d.MinChunk = opts.MinChunk
		}

		res, err := sweep.Run(d, spec)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Step: step, Engine: eng, Result: res})
	}
	return results, nil
}

// ParameterSweep evaluates one property at a fixed state while a fluid
// parameter is varied over [ParamMin, ParamMax].
type ParameterSweep struct {
	Model     string
	Args      []string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Domain    eos.Domain
	X, Y      float64
	Property  eos.Property
}

// ParamPoint is the property value for one parameter value.
type ParamPoint struct {
	ParamValue float64
	Value      float64
	Code       eos.Code
}

// RunParameterSweep opens the fluid once per parameter value. Points whose
// computation fails carry the failing code and a zero value.
func RunParameterSweep(ctx context.Context, ps *ParameterSweep, opts Options) ([]ParamPoint, error) {
	if ps.NumSteps < 2 {
		return nil, fmt.Errorf("%w: need at least 2 steps, got %d", ErrBadStep, ps.NumSteps)
	}
	log := opts.logger()
	values := floats.Span(make([]float64, ps.NumSteps), ps.ParamMin, ps.ParamMax)
	results := make([]ParamPoint, 0, ps.NumSteps)

	for _, pv := range values {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		args := append(append([]string(nil), ps.Args...), fmt.Sprintf("%s=%g", ps.ParamName, pv))
		eng, err := opts.engine(ps.Model, args)
		if err != nil {
			return results, err
		}

		pt := ParamPoint{ParamValue: pv}
		if ps.Domain.OneInput() {
			pt.Value, pt.Code = eng.Compute1(ps.Domain, ps.Property, ps.X)
		} else {
			pt.Value, pt.Code = eng.Compute(ps.Domain, ps.Property, ps.X, ps.Y)
		}
		if pt.Code.Failed() {
			pt.Value = 0
		}
		results = append(results, pt)

		log.WithFields(logrus.Fields{
			ps.ParamName: pv,
			"value":      pt.Value,
			"code":       pt.Code.String(),
		}).Debug("parameter step")
	}
	return results, nil
}
