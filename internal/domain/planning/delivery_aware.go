package planning

// DeliveryAwareStrategy runs the forward simulation engine under the request
// policy, then removes economically unworthy delivery events through the
// consolidation post-processor. It has no allocation logic of its own.
type DeliveryAwareStrategy struct{}

// NewDeliveryAwareStrategy creates the simulate-then-consolidate wrapper.
func NewDeliveryAwareStrategy() *DeliveryAwareStrategy {
	return &DeliveryAwareStrategy{}
}

func (s *DeliveryAwareStrategy) Name() string  { return "delivery-aware" }
func (s *DeliveryAwareStrategy) Label() string { return "Delivery Aware" }

func (s *DeliveryAwareStrategy) Plan(in *Input) *Output {
	result := NewSimulator(in, ParamsFromConfig(in.Reorder)).Run()
	allocs := Consolidate(in, result.Allocations)
	return BuildOutput(in, allocs)
}
