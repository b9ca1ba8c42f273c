package loop

// Stepper is driven once per frame: Update first, then Render.
type Stepper interface {
	Update()
	Render()
}

// Scheduler runs its owner's update/render step once per host frame.
//
// The host calls Frame from its frame-pacing callback. A step runs to
// completion and then requests the next frame; Stop only prevents later steps
// from doing work. There is no timestep normalisation, so anything the owner
// moves per step moves faster on a faster display.
type Scheduler struct {
	owner     Stepper
	running   bool
	requested bool
	steps     int
}

func NewScheduler(owner Stepper) *Scheduler {
	return &Scheduler{owner: owner}
}

// Start sets the running flag and requests the first frame.
func (s *Scheduler) Start() {
	s.running = true
	s.requested = true
}

// Stop clears the running flag. A frame already requested still arrives and
// is a no-op.
func (s *Scheduler) Stop() {
	s.running = false
}

func (s *Scheduler) Running() bool { return s.running }

// Steps is the number of completed update/render steps.
func (s *Scheduler) Steps() int { return s.steps }

// Frame is the host frame callback. It reports whether a step ran.
func (s *Scheduler) Frame() bool {
	if !s.requested {
		return false
	}
	s.requested = false
	if !s.running {
		return false
	}
	s.owner.Update()
	s.owner.Render()
	s.steps++
	s.requested = true
	return true
}

// StepFuncs adapts a pair of functions to Stepper.
type StepFuncs struct {
	UpdateFn func()
	RenderFn func()
}

func (f StepFuncs) Update() { f.UpdateFn() }
func (f StepFuncs) Render() { f.RenderFn() }
