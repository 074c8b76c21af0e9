package services

import (
	"delivery-planner/internal/domain"
	"fmt"
)

// Leg is one stretch of a plan: the segments driven, and the stop reached
// at its end. Stop is nil for the final return to the depot.
type Leg struct {
	Segments []domain.Segment
	Stop     *domain.DeliveryStop
}

type compilerState int

const (
	awaitingFirstSegment compilerState = iota
	proceeding
)

// CommandCompiler folds segment chains into navigation commands.
//
// Consecutive segments on the same street merge into one Proceed. A street
// change flushes the pending Proceed and, unless the change of bearing is
// near-straight, emits a Turn before proceeding on the new street. Reaching
// a stop flushes and emits a Deliver.
type CommandCompiler struct {
	state    compilerState
	pending  domain.Command
	last     domain.Segment
	commands []domain.Command
	done     bool
}

func NewCommandCompiler() *CommandCompiler {
	return &CommandCompiler{}
}

// Segment feeds the next driven segment.
func (c *CommandCompiler) Segment(seg domain.Segment) {
	if c.state == awaitingFirstSegment {
		c.startProceed(seg)
		return
	}

	if seg.Street == c.last.Street {
		c.pending.Miles += seg.Length()
		c.last = seg
		return
	}

	c.flush()
	angle := domain.AngleBetween2Lines(c.last, seg)
	if dir, ok := TurnDirection(angle); ok {
		c.commands = append(c.commands, domain.NewTurn(dir, seg.Street))
	}
	c.startProceed(seg)
}

// EndLeg closes the current leg. A non-nil stop emits its Deliver command.
func (c *CommandCompiler) EndLeg(stop *domain.DeliveryStop) {
	c.flush()
	if stop != nil {
		c.commands = append(c.commands, domain.NewDeliver(stop.Item))
	}
}

// Finish closes the final leg and returns the command sequence.
func (c *CommandCompiler) Finish() []domain.Command {
	if !c.done {
		c.flush()
		c.done = true
	}
	return c.commands
}

func (c *CommandCompiler) startProceed(seg domain.Segment) {
	c.pending = domain.NewProceed(ProceedDirection(domain.AngleOfLine(seg)), seg.Street, seg.Length())
	c.last = seg
	c.state = proceeding
}

func (c *CommandCompiler) flush() {
	if c.state == proceeding {
		c.commands = append(c.commands, c.pending)
		c.pending = domain.Command{}
	}
	c.state = awaitingFirstSegment
}

// CompileCommands runs the compiler over every leg in order. Every leg but
// the last must end at a stop, and the last must end at the depot.
func CompileCommands(legs []Leg) ([]domain.Command, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("compile commands: no legs: %w", domain.ErrUnspecified)
	}

	cc := NewCommandCompiler()
	for i, leg := range legs {
		last := i == len(legs)-1
		if last && leg.Stop != nil {
			return nil, fmt.Errorf("compile commands: final leg must return to depot: %w", domain.ErrUnspecified)
		}
		if !last && leg.Stop == nil {
			return nil, fmt.Errorf("compile commands: leg %d has no delivery stop: %w", i+1, domain.ErrUnspecified)
		}

		for _, seg := range leg.Segments {
			cc.Segment(seg)
		}
		if !last {
			cc.EndLeg(leg.Stop)
		}
	}

	return cc.Finish(), nil
}
