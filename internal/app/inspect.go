package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Inspect reads a previously written install plan and summarizes it.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	if s.PlanReader == nil {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("plan reader is not configured")
	}
	plan, err := s.PlanReader.ReadPlan(req.Path)
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{Plan: plan}
	for _, batch := range plan.Batches {
		result.BuildCount += len(batch)
		for _, unit := range batch {
			result.PackageCount += len(unit.Packages)
		}
	}
	for _, mark := range plan.System {
		if mark.AutoInstalled {
			result.AutoInstalled++
		}
	}
	return result, nil
}
