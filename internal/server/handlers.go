package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/rootcalc/internal/config"
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
)

// MethodResponse is one method's entry in a CompareResponse.
type MethodResponse struct {
	Name       string                       `json:"name"`
	Result     rootfind.SolveResult         `json:"result"`
	Analysis   rootfind.ConvergenceAnalysis `json:"analysis"`
	DurationMS float64                      `json:"duration_ms"`
	Error      string                       `json:"error,omitempty"`
}

// CompareResponse is the body returned by GET /compare.
type CompareResponse struct {
	CardsValue       float64                  `json:"cards"`
	Target           float64                  `json:"target"`
	AnalyticRoot     float64                  `json:"analytic_root"`
	Agree            bool                     `json:"agree"`
	FewestIterations rootfind.Method          `json:"fewest_iterations,omitempty"`
	BestPrecision    rootfind.Method          `json:"best_precision,omitempty"`
	Interpretation   *scenario.Interpretation `json:"interpretation,omitempty"`
	Results          []MethodResponse         `json:"results"`
}

// ScenarioResponse describes one built-in scenario.
type ScenarioResponse struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	CardsValue      float64           `json:"cards"`
	Target          float64           `json:"target"`
	Methods         []rootfind.Method `json:"methods,omitempty"`
	ExpectedOutcome rootfind.Outcome  `json:"expected_outcome,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	cfg, err := s.parseCompareQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if cfg, err = config.ResolveBracket(cfg); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	solvers := orchestration.GetSolversToRun(cfg.Method, s.factory)
	problem := cfg.Problem()
	tolerance := cfg.Tolerance
	results := orchestration.ExecuteSolvers(r.Context(), solvers, problem, cfg.ToSolveConfig(),
		orchestration.ExecuteOptions{Logger: s.logger, Observer: s.metrics},
		orchestration.NullProgressReporter{}, nil)
	orchestration.SortResults(results)

	solved := orchestration.SolveResults(results)
	cmp := rootfind.Compare(problem, solved)
	resp := CompareResponse{
		CardsValue:   problem.CardsValue,
		Target:       problem.Target,
		AnalyticRoot: cmp.AnalyticRoot,
		Agree:        len(cmp.Converged) > 0 && rootfind.Agree(solved, 2*tolerance),
		Results:      make([]MethodResponse, len(results)),
	}
	if cmp.FewestIterations != nil {
		resp.FewestIterations = cmp.FewestIterations.Method
		in := scenario.Interpret(problem, cmp.FewestIterations.Root)
		resp.Interpretation = &in
	}
	if cmp.BestPrecision != nil {
		resp.BestPrecision = cmp.BestPrecision.Method
	}
	for i, rr := range results {
		res := rr.Result
		if limit := s.security.MaxHistory; limit > 0 && len(res.History) > limit {
			res.History = res.History[len(res.History)-limit:]
		}
		mr := MethodResponse{
			Name:       rr.Name,
			Result:     res,
			Analysis:   rootfind.AnalyzeConvergence(rr.Result),
			DurationMS: float64(rr.Duration) / float64(time.Millisecond),
		}
		if rr.Err != nil {
			mr.Error = rr.Err.Error()
		}
		resp.Results[i] = mr
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// parseCompareQuery overlays the query parameters on the server defaults and
// validates the result the same way the command line does.
func (s *Server) parseCompareQuery(q url.Values) (config.AppConfig, error) {
	cfg := s.defaults
	cfg.AutoBracket = false

	var errs []error
	floatParam := func(name string, dst *float64, required bool) {
		raw := q.Get(name)
		if raw == "" {
			if required {
				errs = append(errs, apperrors.ValidationError{Field: name, Message: "is required"})
			}
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, apperrors.ValidationError{Field: name, Message: "must be a number"})
			return
		}
		*dst = v
	}

	floatParam("cards", &cfg.CardsValue, true)
	floatParam("target", &cfg.Target, true)
	floatParam("tol", &cfg.Tolerance, false)
	floatParam("divergence", &cfg.DivergenceBound, false)
	floatParam("a", &cfg.LowerBound, false)
	floatParam("b", &cfg.UpperBound, false)
	floatParam("x0", &cfg.InitialGuess, false)

	if raw := q.Get("max_iter"); raw != "" {
		v, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = append(errs, apperrors.ValidationError{Field: "max_iter", Message: "must be an integer"})
		case s.security.MaxIterations > 0 && v > s.security.MaxIterations:
			errs = append(errs, apperrors.ValidationError{Field: "max_iter", Message: "exceeds the server limit of " + strconv.Itoa(s.security.MaxIterations)})
		default:
			cfg.MaxIterations = v
		}
	}
	if raw := q.Get("method"); raw != "" {
		cfg.Method = strings.ToLower(raw)
	}
	if raw := q.Get("auto_bracket"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, apperrors.ValidationError{Field: "auto_bracket", Message: "must be a boolean"})
		}
		cfg.AutoBracket = v
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, cfg.Validate(s.factory.List())
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	all := scenario.List()
	resp := make([]ScenarioResponse, len(all))
	for i, sc := range all {
		resp[i] = ScenarioResponse{
			Name:            sc.Name,
			Description:     sc.Description,
			CardsValue:      sc.Problem.CardsValue,
			Target:          sc.Problem.Target,
			Methods:         sc.Methods,
			ExpectedOutcome: sc.ExpectedOutcome,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.metrics.Handler().ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("request rejected", logging.Int("status", status), logging.Err(err))
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
