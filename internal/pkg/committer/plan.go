package committer

import "context"

// Step is one named unit of work inside a Plan.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Plan is an ordered list of steps a use case stages before committing.
type Plan struct {
	steps []Step
}

func NewPlan() *Plan {
	return &Plan{
		steps: make([]Step, 0),
	}
}

// Add appends a step. A nil run function is ignored.
func (p *Plan) Add(name string, run func(ctx context.Context) error) {
	if run == nil {
		return
	}
	p.steps = append(p.steps, Step{Name: name, Run: run})
}

func (p *Plan) IsEmpty() bool {
	return len(p.steps) == 0
}

func (p *Plan) Steps() []Step {
	return p.steps
}
