package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"assistant/internal/app/reminders"
	"assistant/internal/app/tasks"
	"assistant/internal/domain/intent"
	"assistant/internal/domain/schedule"
)

const doneText = "Done."

type TaskActions interface {
	Add(ctx context.Context, description string) (string, error)
	Delete(ctx context.Context, id int) (string, error)
	Help(ctx context.Context, id int) (string, error)
	List(ctx context.Context) (string, error)
}

type ScheduleActions interface {
	Add(ctx context.Context, event schedule.Event) (string, error)
	View(ctx context.Context, r schedule.TimeRange) (string, error)
}

type ReminderActions interface {
	Add(ctx context.Context, text string, remindAt *time.Time) (string, error)
	Delete(ctx context.Context, id int) (string, error)
	List(ctx context.Context) (string, error)
}

// Router maps (category, kind) to a handler. Route always yields a result;
// handler errors and panics become explanatory text for that item.
type Router struct {
	Tasks     TaskActions
	Schedule  ScheduleActions
	Reminders ReminderActions
	Timeout   time.Duration
}

type actionKey struct {
	Category intent.Category
	Kind     intent.Kind
}

type actionHandler func(ctx context.Context, r Router, p intent.Payload) (string, error)

func actionRegistry() map[actionKey]actionHandler {
	return map[actionKey]actionHandler{
		{intent.CategoryTask, intent.KindAdd}:        taskAdd,
		{intent.CategoryTask, intent.KindDelete}:     taskDelete,
		{intent.CategoryTask, intent.KindHelp}:       taskHelp,
		{intent.CategoryTask, intent.KindList}:       taskList,
		{intent.CategorySchedule, intent.KindAdd}:    scheduleAdd,
		{intent.CategorySchedule, intent.KindView}:   scheduleView,
		{intent.CategoryReminder, intent.KindAdd}:    reminderAdd,
		{intent.CategoryReminder, intent.KindDelete}: reminderDelete,
		{intent.CategoryReminder, intent.KindList}:   reminderList,
	}
}

// SupportedKinds lists the action vocabulary of a category in display order.
func SupportedKinds(c intent.Category) []intent.Kind {
	switch c {
	case intent.CategoryTask:
		return []intent.Kind{intent.KindAdd, intent.KindDelete, intent.KindHelp, intent.KindList}
	case intent.CategorySchedule:
		return []intent.Kind{intent.KindAdd, intent.KindView}
	case intent.CategoryReminder:
		return []intent.Kind{intent.KindAdd, intent.KindDelete, intent.KindList}
	default:
		return nil
	}
}

func handlerFor(rec intent.ActionRecord) (actionHandler, error) {
	handler, ok := actionRegistry()[actionKey{rec.Category, rec.Kind}]
	if !ok {
		return nil, &UnsupportedActionError{Category: rec.Category, Kind: rec.Kind, Supported: SupportedKinds(rec.Category)}
	}
	return handler, nil
}

func (r Router) Route(ctx context.Context, rec intent.ActionRecord) (res intent.Result) {
	handler, err := handlerFor(rec)
	if err != nil {
		var unsupported *UnsupportedActionError
		if errors.As(err, &unsupported) {
			return intent.Result{Text: unsupported.Text(), Status: intent.StatusUnsupported}
		}
		return intent.Result{Text: failureText(rec, err), Status: intent.StatusFailed}
	}
	defer func() {
		if p := recover(); p != nil {
			res = intent.Result{Text: failureText(rec, ErrHandlerPanic), Status: intent.StatusFailed}
		}
	}()

	callCtx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()
	text, err := handler(callCtx, r, rec.Payload)
	if err != nil {
		return intent.Result{Text: failureText(rec, err), Status: intent.StatusFailed}
	}
	if strings.TrimSpace(text) == "" {
		text = doneText
	}
	return intent.Result{Text: text, Status: intent.StatusOK}
}

func failureText(rec intent.ActionRecord, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("The %s service took too long to respond. Please try again.", rec.Category)
	case errors.Is(err, ErrInvalidPayload),
		errors.Is(err, tasks.ErrEmptyDescription),
		errors.Is(err, reminders.ErrEmptyText),
		errors.Is(err, schedule.ErrInvalidTime),
		errors.Is(err, schedule.ErrInvalidTimeZone),
		errors.Is(err, schedule.ErrEmptyTitle),
		errors.Is(err, schedule.ErrEndBeforeStart):
		return fmt.Sprintf("Could not %s %s: %s.", rec.Kind, rec.Category, detailProblem(err))
	case errors.Is(err, ErrHandlerPanic):
		return fmt.Sprintf("Something went wrong while handling your %s request.", rec.Category)
	default:
		return fmt.Sprintf("The %s service is unavailable right now. Please try again later.", rec.Category)
	}
}

func detailProblem(err error) string {
	switch {
	case errors.Is(err, tasks.ErrEmptyDescription):
		return "the task description is missing"
	case errors.Is(err, reminders.ErrEmptyText):
		return "the reminder text is missing"
	case errors.Is(err, schedule.ErrEmptyTitle):
		return "the event title is missing"
	case errors.Is(err, schedule.ErrEndBeforeStart):
		return "the event ends before it starts"
	case errors.Is(err, schedule.ErrInvalidTime), errors.Is(err, schedule.ErrInvalidTimeZone):
		return "the date or time zone is not valid"
	default:
		return "the details are incomplete"
	}
}

func payloadID(p intent.Payload) (int, error) {
	id, err := strconv.Atoi(p.Get(intent.FieldID))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidPayload, p.Get(intent.FieldID))
	}
	return id, nil
}

func taskAdd(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Tasks == nil {
		return "", errNotConfigured
	}
	return r.Tasks.Add(ctx, p.Get(intent.FieldDescription))
}

func taskDelete(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Tasks == nil {
		return "", errNotConfigured
	}
	id, err := payloadID(p)
	if err != nil {
		return "", err
	}
	return r.Tasks.Delete(ctx, id)
}

func taskHelp(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Tasks == nil {
		return "", errNotConfigured
	}
	id, err := payloadID(p)
	if err != nil {
		return "", err
	}
	return r.Tasks.Help(ctx, id)
}

func taskList(ctx context.Context, r Router, _ intent.Payload) (string, error) {
	if r.Tasks == nil {
		return "", errNotConfigured
	}
	return r.Tasks.List(ctx)
}

func scheduleAdd(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Schedule == nil {
		return "", errNotConfigured
	}
	zone := p.Get(intent.FieldTimeZone)
	start, err := schedule.ParseLocal(p.Get(intent.FieldStartTime), zone)
	if err != nil {
		return "", err
	}
	end, err := schedule.ParseLocal(p.Get(intent.FieldEndTime), zone)
	if err != nil {
		return "", err
	}
	return r.Schedule.Add(ctx, schedule.Event{
		Title:       p.Get(intent.FieldTitle),
		Description: p.Get(intent.FieldDescription),
		Start:       start,
		End:         end,
		TimeZone:    zone,
	})
}

func scheduleView(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Schedule == nil {
		return "", errNotConfigured
	}
	zone := p.Get(intent.FieldTimeZone)
	start, err := schedule.ParseLocal(p.Get(intent.FieldStartTime), zone)
	if err != nil {
		return "", err
	}
	end, err := schedule.ParseLocal(p.Get(intent.FieldEndTime), zone)
	if err != nil {
		return "", err
	}
	return r.Schedule.View(ctx, schedule.TimeRange{Start: start, End: end, TimeZone: zone})
}

func reminderAdd(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Reminders == nil {
		return "", errNotConfigured
	}
	var at *time.Time
	if raw := p.Get(intent.FieldRemindAt); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return "", fmt.Errorf("%w: remind_at %q", ErrInvalidPayload, raw)
		}
		at = &t
	}
	return r.Reminders.Add(ctx, p.Get(intent.FieldText), at)
}

func reminderDelete(ctx context.Context, r Router, p intent.Payload) (string, error) {
	if r.Reminders == nil {
		return "", errNotConfigured
	}
	id, err := payloadID(p)
	if err != nil {
		return "", err
	}
	return r.Reminders.Delete(ctx, id)
}

func reminderList(ctx context.Context, r Router, _ intent.Payload) (string, error) {
	if r.Reminders == nil {
		return "", errNotConfigured
	}
	return r.Reminders.List(ctx)
}
