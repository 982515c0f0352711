package storage

import (
	"context"
	"errors"

	"github.com/XJIeI5/evaluation/internal/calculation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// calcExpressions runs until the queue is closed.
func (s *storage) calcExpressions() {
	defer s.workers.Done()
	for {
		_expr, more := s.exprQueue.Dequeue()
		if !more {
			return
		}

		ctx := context.Background()
		st, result := ok, ""
		res, err := s.calculate(ctx, _expr.postfixExpr)
		if err != nil {
			st, result = has_error, err.Error()
		} else {
			result = calculation.Format(res)
		}

		if err := updateExpressionState(ctx, s.db, st, result, _expr.id); err != nil {
			s.logger.Error("store result", "id", _expr.id, "err", err)
			continue
		}
		s.logger.Info("expression calculated", "id", _expr.id, "state", st, "result", result)
	}
}

// calculate prefers the compute server with the most free processes and
// falls back to calculating in place when none can take the expression.
func (s *storage) calculate(ctx context.Context, _expr postfixExpr) (float64, error) {
	if comp, err := s.getMostFreeComputationServer(ctx); err == nil {
		rpcCtx, cancel := context.WithTimeout(ctx, s.cfg.RPCTimeout)
		res, err := comp.client.Evaluate(rpcCtx, string(_expr), s.cfg.Strict)
		cancel()
		if err == nil {
			s.beat(ctx, comp)
			return res, nil
		}
		if st := status.Convert(err); st.Code() == codes.InvalidArgument {
			return 0, errors.New(st.Message())
		}
		s.logger.Warn("compute server failed", "addr", comp.addr, "err", err)
		s.forgetCompute(ctx, comp.addr)
	} else {
		s.logger.Debug("calculating in place", "reason", err)
	}

	c := calculation.Calculator{Strict: s.cfg.Strict, Logger: s.logger}
	return c.Calculate(string(_expr))
}
