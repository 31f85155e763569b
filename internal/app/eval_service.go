package app

import (
	"fmt"
	"time"

	"github.com/mmrzaf/datemath/internal/datemath"
	"github.com/mmrzaf/datemath/internal/domain"
	"github.com/mmrzaf/datemath/internal/infra/repos/history"
	"github.com/mmrzaf/datemath/internal/logging"
)

// EvalService evaluates date math inputs and records every evaluation,
// failed ones included, in the history repository.
type EvalService struct {
	defaultLoc *time.Location
	history    history.Repository
	logger     *logging.Logger
}

func NewEvalService(defaultLoc *time.Location, historyRepo history.Repository, logger *logging.Logger) *EvalService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &EvalService{
		defaultLoc: defaultLoc,
		history:    historyRepo,
		logger:     logger,
	}
}

func (s *EvalService) Evaluate(req *domain.EvalRequest) (*domain.Evaluation, error) {
	if req.Input == "" {
		return nil, fmt.Errorf("input is required")
	}

	loc := s.defaultLoc
	if req.TZ != "" {
		l, err := time.LoadLocation(req.TZ)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q: %w", req.TZ, err)
		}
		loc = l
	}

	ev := &domain.Evaluation{
		Input:       req.Input,
		TZ:          loc.String(),
		Anchor:      req.Now,
		EvaluatedAt: time.Now().UTC(),
	}

	result, evalErr := datemath.ParseIn(req.Now, req.Input, loc)
	if evalErr != nil {
		ev.Status = domain.EvalStatusError
		ev.Error = evalErr.Error()
	} else {
		r := result
		ev.Result = &r
		ev.Status = domain.EvalStatusOK
	}

	if err := s.history.Record(ev); err != nil {
		s.logger.Warnw("history.record_failed", map[string]any{"error": err.Error()})
	}

	if evalErr != nil {
		s.logger.Infow("eval.rejected", map[string]any{"input": req.Input, "error": evalErr.Error()})
		return ev, evalErr
	}
	s.logger.Debugw("eval.completed", map[string]any{
		"input":  req.Input,
		"tz":     ev.TZ,
		"result": result.Format(time.RFC3339Nano),
	})
	return ev, nil
}

func (s *EvalService) History(limit int, status string) ([]*domain.Evaluation, error) {
	return s.history.List(limit, status)
}

func (s *EvalService) GetEvaluation(id string) (*domain.Evaluation, error) {
	return s.history.Get(id)
}
