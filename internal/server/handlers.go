package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/jar0582/schedsim/internal/engine"
	"github.com/jar0582/schedsim/internal/policy"
	"github.com/jar0582/schedsim/pkg/model"
)

type healthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Policies  int    `json:"policies"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, RequestIDFromContext(r.Context()), healthResponse{
		Status:    "healthy",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Policies:  len(s.registry.Names()),
	})
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names()
	infos := make([]model.PolicyInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, model.PolicyInfo{Name: name, UsesQuantum: policy.UsesQuantum(name)})
	}
	respondOK(w, RequestIDFromContext(r.Context()), infos)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrCodeValidation,
			Message: fmt.Sprintf("invalid request body: %v", err),
		})
		return
	}
	if req.Policy == "" {
		respondError(w, reqID, http.StatusBadRequest, &model.APIError{
			Code:    model.ErrCodeValidation,
			Message: "policy is required",
		})
		return
	}
	for i := range req.Processes {
		req.Processes[i].OriginalIndex = i
	}

	res, err := s.engine.Run(req.Processes, engine.Options{
		Policy:   req.Policy,
		Quantum:  req.Quantum,
		Observer: engine.TickLimit(s.config.MaxTicks),
	})
	if err != nil {
		s.logger.WithError(err).WithField("request_id", reqID).Warn("simulation failed")
		respondSimError(w, reqID, err)
		return
	}
	respondOK(w, reqID, res)
}
