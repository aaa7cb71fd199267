package measure

import (
	"time"

	"github.com/askiada/go-textops/pkg/textops/model"
)

// RunMetricName keys the whole-run metric inside a Measure.
const RunMetricName = "run"

type executorMeasure struct {
	Measure
}

func (em *executorMeasure) OnRunStart(_ *model.RunInfo, steps []*model.StepInfo) error {
	em.AddMetric(RunMetricName)

	for _, step := range steps {
		em.AddMetric(step.ID)
	}

	return nil
}

func (em *executorMeasure) OnStepDone(_ *model.RunInfo, step *model.StepInfo, outcome model.StepOutcome) error {
	if outcome.Status == model.StatusSkipped {
		return nil
	}

	em.GetMetric(step.ID).AddDuration(outcome.Elapsed)

	return nil
}

func (em *executorMeasure) OnRunEnd(_ *model.RunInfo, elapsed time.Duration) error {
	mt := em.GetMetric(RunMetricName)
	mt.AddDuration(elapsed)
	mt.SetLastRun(elapsed)

	return nil
}

// ExecutorMeasure wraps a Measure as an executor observer.
func ExecutorMeasure(msr Measure) model.Observer {
	return &executorMeasure{msr}
}
