package domain

// PlanResult is the output of delivery planning.
// Commands are in traversal order; TotalMiles is the real road distance
// summed over every leg. Stops holds the optimized visiting order and
// CrowMiles the optimizer's straight-line estimate for it.
type PlanResult struct {
	Commands   []Command
	TotalMiles float64
	Stops      []DeliveryStop
	CrowMiles  float64
}

// Deliveries counts the Deliver commands in the plan.
func (p PlanResult) Deliveries() int {
	n := 0
	for _, c := range p.Commands {
		if c.Kind == CommandDeliver {
			n++
		}
	}
	return n
}
