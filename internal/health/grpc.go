package health

import (
	"context"

	"connectrpc.com/grpchealth"
)

// GRPCChecker exposes the readiness check over the gRPC health protocol.
// Any service name maps to the overall status.
type GRPCChecker struct {
	checker *Checker
}

func NewGRPCChecker(checker *Checker) *GRPCChecker {
	return &GRPCChecker{checker: checker}
}

var _ grpchealth.Checker = (*GRPCChecker)(nil)

func (g *GRPCChecker) Check(ctx context.Context, _ *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if g.checker.Check(ctx).Status != StatusHealthy {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	}
	return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
}
