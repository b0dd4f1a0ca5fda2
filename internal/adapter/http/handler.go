package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"assistant/internal/app/command"
	"assistant/internal/app/ports"
	"assistant/internal/domain/reminder"
	"assistant/internal/domain/task"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const tasksClearedMessage = "Tasks cleared successfully!"

type commandRunner interface {
	Execute(ctx context.Context, req command.Request) (command.Response, error)
}

type taskBoard interface {
	Snapshot(ctx context.Context) ([]task.Task, error)
	Clear(ctx context.Context) error
}

type reminderBoard interface {
	Snapshot(ctx context.Context) ([]reminder.Reminder, error)
}

type Handler struct {
	CommandUC   commandRunner
	TasksUC     taskBoard
	RemindersUC reminderBoard
	KPI         kpiSnapshotProvider
	// Metrics serves /metrics when set.
	Metrics app.HandlerFunc
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	s.POST("/process", h.process)
	s.GET("/tasks", h.tasks)
	s.POST("/clear-tasks", h.clearTasks)
	s.GET("/reminders", h.reminders)
	s.GET("/healthz", h.healthz)
	s.GET("/ops/kpi", h.kpi)
	if h.Metrics != nil {
		s.GET("/metrics", h.Metrics)
	}
}

type processRequest struct {
	UserInput string `json:"user_input"`
}

type processResponse struct {
	Response  string `json:"response"`
	RequestID string `json:"request_id,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

type taskEntry struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (h Handler) process(c context.Context, ctx *app.RequestContext) {
	var body processRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if h.CommandUC == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "command pipeline not configured")
		return
	}
	resp, err := h.CommandUC.Execute(c, command.Request{Input: body.UserInput})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, processResponse{
		Response:  resp.Text,
		RequestID: resp.RequestID,
		Outcome:   resp.Outcome,
	})
}

// tasks answers with the stored mapping keyed by id.
func (h Handler) tasks(c context.Context, ctx *app.RequestContext) {
	all, err := h.TasksUC.Snapshot(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make(map[string]taskEntry, len(all))
	for _, t := range all {
		out[strconv.Itoa(t.ID)] = taskEntry{Description: t.Description, Completed: t.Completed}
	}
	ctx.JSON(consts.StatusOK, out)
}

func (h Handler) clearTasks(c context.Context, ctx *app.RequestContext) {
	if err := h.TasksUC.Clear(c); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]string{"message": tasksClearedMessage})
}

func (h Handler) reminders(c context.Context, ctx *app.RequestContext) {
	if h.RemindersUC == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "reminders not configured")
		return
	}
	all, err := h.RemindersUC.Snapshot(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if all == nil {
		all = []reminder.Reminder{}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"reminders": all})
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// writeError never echoes collaborator error text to the client.
func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, command.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "user_input is required")
	case errors.Is(err, command.ErrCollaborator):
		writeErrorBody(ctx, consts.StatusBadGateway, "collaborator_unavailable", "an upstream service is unavailable, please try again later")
	case errors.Is(err, context.DeadlineExceeded):
		writeErrorBody(ctx, consts.StatusGatewayTimeout, "timeout", "request timed out")
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", "not found")
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
