package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joseph-ayodele/news-alert/internal/async"
	"github.com/joseph-ayodele/news-alert/internal/common"
	"github.com/joseph-ayodele/news-alert/internal/task"
)

const maxPromptLength = 2000

// createTaskRequest mirrors the submission payload. Only prompt and
// recipient_email are mandatory; the hints are folded into the prompt by
// the pipeline.
type createTaskRequest struct {
	Prompt         string `json:"prompt"`
	RecipientEmail string `json:"recipient_email"`
	Language       string `json:"language,omitempty"`
	TimeRange      string `json:"time_range,omitempty"`
	NumResults     string `json:"num_results,omitempty"`
}

type createTaskResponse struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Validation happens before a task exists: a rejected request must
	// leave no trace in the store.
	v := common.NewValidator()
	v.Field("prompt", req.Prompt, common.Required, func(f string, val interface{}) *common.ValidationError {
		return common.MaxLength(f, val, maxPromptLength)
	})
	v.Field("recipient_email", req.RecipientEmail, common.Required, common.EmailList)
	if v.HasErrors() {
		s.writeError(w, http.StatusUnprocessableEntity, v.ErrorMessage())
		return
	}

	id := s.store.Create(task.Inputs{
		Prompt:    req.Prompt,
		Recipient: req.RecipientEmail,
		Language:  req.Language,
		TimeRange: req.TimeRange,
		CountHint: req.NumResults,
	})
	if err := s.queue.Enqueue(r.Context(), async.Job{TaskID: id}); err != nil {
		s.logger.Error("http.enqueue_error", "task_id", id, "error", err)
		// The task already exists; give the poller a terminal state
		// instead of a forever-queued entry.
		if ferr := s.store.SetFailed(id, "could not be queued: service is shutting down"); ferr != nil {
			s.logger.Error("http.fail_record_error", "task_id", id, "error", ferr)
		}
		s.writeError(w, http.StatusServiceUnavailable, "service is shutting down")
		return
	}

	s.logger.Info("http.task_created", "task_id", id)
	s.writeJSON(w, http.StatusCreated, createTaskResponse{TaskID: id, Message: "Task started"})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "task not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to load task")
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
