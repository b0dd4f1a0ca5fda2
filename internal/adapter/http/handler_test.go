package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"assistant/internal/app/command"
	"assistant/internal/domain/reminder"
	"assistant/internal/domain/task"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestProcess_ReturnsAggregatedText(t *testing.T) {
	runner := &fakeRunner{resp: command.Response{RequestID: "r1", Text: "Task 1 added: Buy milk", Outcome: "aggregated"}}
	h := Handler{CommandUC: runner}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"user_input":"add a task to buy milk"}`))

	h.process(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["response"], "Task 1 added: Buy milk"; got != want {
		t.Fatalf("response mismatch: got=%v want=%v", got, want)
	}
	if runner.got.Input != "add a task to buy milk" {
		t.Fatalf("input not forwarded: %q", runner.got.Input)
	}
}

func TestProcess_InvalidJSON(t *testing.T) {
	h := Handler{CommandUC: &fakeRunner{}}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"user_input":`))

	h.process(context.Background(), ctx)

	assertErrorCode(t, ctx, consts.StatusBadRequest, "invalid_json")
}

func TestProcess_CollaboratorFailureIs502(t *testing.T) {
	err := &command.CollaboratorError{Stage: command.StageModeration, Err: errors.New("dial tcp: secret-host:443 refused")}
	h := Handler{CommandUC: &fakeRunner{err: err}}
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"user_input":"hello"}`))

	h.process(context.Background(), ctx)

	assertErrorCode(t, ctx, consts.StatusBadGateway, "collaborator_unavailable")
	if body := string(ctx.Response.Body()); strings.Contains(body, "secret-host") {
		t.Fatalf("collaborator detail leaked: %s", body)
	}
}

func TestProcess_BlankInputIs400(t *testing.T) {
	h := Handler{CommandUC: &fakeRunner{err: command.ErrInvalidRequest}}
	ctx := &app.RequestContext{}

	h.process(context.Background(), ctx)

	assertErrorCode(t, ctx, consts.StatusBadRequest, "bad_request")
}

func TestTasks_KeyedByID(t *testing.T) {
	h := Handler{TasksUC: &fakeBoard{tasks: []task.Task{
		{ID: 1, Description: "Buy milk", Completed: true},
		{ID: 3, Description: "Walk dog"},
	}}}
	ctx := &app.RequestContext{}

	h.tasks(context.Background(), ctx)

	var body map[string]taskEntry
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body) != 2 || !body["1"].Completed || body["3"].Description != "Walk dog" {
		t.Fatalf("unexpected tasks body: %+v", body)
	}
}

func TestClearTasks(t *testing.T) {
	board := &fakeBoard{tasks: []task.Task{{ID: 1, Description: "x"}}}
	h := Handler{TasksUC: board}
	ctx := &app.RequestContext{}

	h.clearTasks(context.Background(), ctx)

	if !board.cleared {
		t.Fatalf("expected clear to be called")
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["message"], "Tasks cleared successfully!"; got != want {
		t.Fatalf("message mismatch: got=%q want=%q", got, want)
	}
}

func TestClearTasks_StoreFailure(t *testing.T) {
	h := Handler{TasksUC: &fakeBoard{err: errors.New("disk full")}}
	ctx := &app.RequestContext{}

	h.clearTasks(context.Background(), ctx)

	assertErrorCode(t, ctx, consts.StatusInternalServerError, "internal_error")
}

func TestReminders_EmptyListIsArray(t *testing.T) {
	h := Handler{RemindersUC: fakeReminderBoard{}}
	ctx := &app.RequestContext{}

	h.reminders(context.Background(), ctx)

	var body map[string][]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if list, ok := body["reminders"]; !ok || list == nil || len(list) != 0 {
		t.Fatalf("expected empty reminders array, got %s", ctx.Response.Body())
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)
	assertErrorCode(t, ctx, consts.StatusNotFound, "not_configured")
}

func assertErrorCode(t *testing.T, ctx *app.RequestContext, status int, code string) {
	t.Helper()
	if got := ctx.Response.StatusCode(); got != status {
		t.Fatalf("status mismatch: got=%d want=%d", got, status)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	errObj, _ := body["error"].(map[string]any)
	if got := errObj["code"]; got != code {
		t.Fatalf("error code mismatch: got=%v want=%q", got, code)
	}
}

type fakeRunner struct {
	got  command.Request
	resp command.Response
	err  error
}

func (f *fakeRunner) Execute(_ context.Context, req command.Request) (command.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakeBoard struct {
	tasks   []task.Task
	cleared bool
	err     error
}

func (f *fakeBoard) Snapshot(context.Context) ([]task.Task, error) {
	return f.tasks, f.err
}

func (f *fakeBoard) Clear(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.cleared = true
	f.tasks = nil
	return nil
}

type fakeReminderBoard struct {
	items []reminder.Reminder
}

func (f fakeReminderBoard) Snapshot(context.Context) ([]reminder.Reminder, error) {
	return f.items, nil
}
