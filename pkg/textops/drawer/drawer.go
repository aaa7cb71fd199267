// Package drawer renders a pipeline run as a DOT graph (for dot/Graphviz
// SVG output). Steps are chained input to output and colored by their
// outcome in the most recent run; attaching a measure adds duration heat
// coloring. Nothing in the core depends on it.
package drawer

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	colors "gopkg.in/go-playground/colors.v1"

	"github.com/askiada/go-textops/internal/store"
	"github.com/askiada/go-textops/pkg/textops/measure"
	"github.com/askiada/go-textops/pkg/textops/model"
)

const (
	inputVertex  = "input"
	outputVertex = "output"

	okColor      = "#1a7f37"
	failedColor  = "#c62828"
	skippedColor = "#9e9e9e"
)

// SVGDrawer is an executor observer that keeps a drawable graph of the
// latest run.
type SVGDrawer struct {
	mu    sync.Mutex
	store store.AnnotatedStore[string, string]
	graph graph.Graph[string, string]
	// names maps step ids to their vertex names.
	names map[string]string
}

// NewSVGDrawer creates a drawer. The graph is rebuilt on every run.
func NewSVGDrawer() *SVGDrawer {
	d := &SVGDrawer{}
	d.reset()

	return d
}

func (d *SVGDrawer) reset() {
	d.store = store.NewMemoryStore[string, string]()
	d.graph = graph.NewWithStore(graph.StringHash, d.store, graph.Directed())
	d.names = make(map[string]string)
}

// OnRunStart rebuilds the graph to match the run's step layout.
func (d *SVGDrawer) OnRunStart(_ *model.RunInfo, steps []*model.StepInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reset()

	if err := d.graph.AddVertex(inputVertex); err != nil {
		return errors.Wrap(err, "unable to add input vertex")
	}

	if err := d.graph.AddVertex(outputVertex); err != nil {
		return errors.Wrap(err, "unable to add output vertex")
	}

	previous := inputVertex

	for _, step := range steps {
		name := fmt.Sprintf("%d. %s", step.Position+1, step.Label)
		d.names[step.ID] = name

		if err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box")); err != nil {
			return errors.Wrapf(err, "unable to add vertex %s", name)
		}

		if err := d.graph.AddEdge(previous, name); err != nil {
			return errors.Wrapf(err, "unable to add edge from %s to %s", previous, name)
		}

		previous = name
	}

	if err := d.graph.AddEdge(previous, outputVertex); err != nil {
		return errors.Wrap(err, "unable to add edge to output")
	}

	return nil
}

// OnStepDone colors the step's vertex by its outcome.
func (d *SVGDrawer) OnStepDone(_ *model.RunInfo, step *model.StepInfo, outcome model.StepOutcome) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	name, ok := d.names[step.ID]
	if !ok {
		return errors.Errorf("no vertex for step %s", step.ID)
	}

	color := skippedColor

	switch outcome.Status {
	case model.StatusOK:
		color = okColor
	case model.StatusFailed:
		color = failedColor
	}

	d.store.UpdateVertex(name, func(props *graph.VertexProperties) {
		if props.Attributes == nil {
			props.Attributes = make(map[string]string)
		}

		props.Attributes["color"] = color
		props.Attributes["fontcolor"] = color

		if outcome.Elapsed > 0 {
			props.Attributes["xlabel"] = outcome.Elapsed.String()
		}

		if outcome.Err != nil {
			props.Attributes["tooltip"] = outcome.Err.Error()
		}
	})

	return nil
}

// OnRunEnd labels the output vertex with the run's total duration.
func (d *SVGDrawer) OnRunEnd(_ *model.RunInfo, elapsed time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.store.UpdateVertex(outputVertex, func(props *graph.VertexProperties) {
		if props.Attributes == nil {
			props.Attributes = make(map[string]string)
		}

		props.Attributes["xlabel"] = elapsed.String()
	})

	return nil
}

var _ model.Observer = (*SVGDrawer)(nil)

const maxRGB = 240

// AddMeasure colors the step vertices on a blue-to-red scale between the
// fastest and slowest average step duration.
func (d *SVGDrawer) AddMeasure(msr measure.Measure) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var minAvg, maxAvg time.Duration

	avgs := make(map[string]time.Duration, len(d.names))

	for id, name := range d.names {
		mt := msr.GetMetric(id)
		if mt == nil || mt.Count() == 0 {
			continue
		}

		avg := mt.AVGDuration()
		avgs[name] = avg

		if minAvg == 0 || avg < minAvg {
			minAvg = avg
		}

		if avg > maxAvg {
			maxAvg = avg
		}
	}

	for name, avg := range avgs {
		fraction := 1.0
		if maxAvg > minAvg {
			fraction = float64(avg-minAvg) / float64(maxAvg-minAvg)
		}

		red := uint8(maxRGB * fraction)
		blue := uint8(-maxRGB*fraction + maxRGB)

		heat, err := colors.RGB(red, 0, blue)
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		hex := heat.ToHEX().String()

		d.store.UpdateVertex(name, func(props *graph.VertexProperties) {
			if props.Attributes == nil {
				props.Attributes = make(map[string]string)
			}

			props.Attributes["color"] = hex
			props.Attributes["xlabel"] = avg.String()
		})
	}

	return nil
}

// Draw renders the graph as DOT.
func (d *SVGDrawer) Draw(wrt io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := dot(d.graph, wrt)
	if err != nil {
		return errors.Wrap(err, "unable to render graph")
	}

	return nil
}

// DrawFile renders the graph as DOT into a file.
func (d *SVGDrawer) DrawFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", fileName)
	}
	defer file.Close()

	return d.Draw(file)
}
