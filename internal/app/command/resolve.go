package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"assistant/internal/app/modelout"
	"assistant/internal/app/ports"
	"assistant/internal/app/prompt"
	"assistant/internal/domain/intent"
	"assistant/internal/domain/schedule"
)

const defaultEventLength = time.Hour

// Resolver turns one item's detail text into an action record. Each category
// has its own prompt and payload shape; failures stay local to the item.
type Resolver struct {
	Completer ports.Completer
	Timeout   time.Duration
	TimeZone  string
	Now       func() time.Time
}

type strategy struct {
	systemPrompt func(r Resolver) string
	parse        func(r Resolver, out string) (intent.ActionRecord, error)
}

func strategies() map[intent.Category]strategy {
	return map[intent.Category]strategy{
		intent.CategoryTask: {
			systemPrompt: func(Resolver) string { return prompt.TaskDetail() },
			parse:        Resolver.parseTask,
		},
		intent.CategorySchedule: {
			systemPrompt: func(r Resolver) string { return prompt.ScheduleDetail(r.now(), r.zone()) },
			parse:        Resolver.parseSchedule,
		},
		intent.CategoryReminder: {
			systemPrompt: func(r Resolver) string { return prompt.ReminderDetail(r.now(), r.zone()) },
			parse:        Resolver.parseReminder,
		},
	}
}

func (r Resolver) Resolve(ctx context.Context, item intent.Item) (intent.ActionRecord, error) {
	s, ok := strategies()[item.Category]
	if !ok {
		return intent.ActionRecord{}, &UnknownCategoryError{Category: string(item.Category)}
	}
	if r.Completer == nil {
		return intent.ActionRecord{}, &CollaboratorError{Stage: StageDetail, Err: errNotConfigured}
	}
	callCtx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()
	out, err := r.Completer.Complete(callCtx, s.systemPrompt(r), prompt.Wrap(item.Detail))
	if errors.Is(err, ports.ErrEmptyCompletion) {
		return intent.ActionRecord{}, &DetailParseError{Category: item.Category, Reason: "empty reply", Err: err}
	}
	if err != nil {
		return intent.ActionRecord{}, &CollaboratorError{Stage: StageDetail, Err: err}
	}
	return s.parse(r, out)
}

type taskPayload struct {
	Action  *looseString `json:"task_action"`
	Details looseString  `json:"details"`
}

func (r Resolver) parseTask(out string) (intent.ActionRecord, error) {
	var p taskPayload
	if err := modelout.Decode(out, &p); err != nil {
		return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryTask, Reason: "unparseable payload", Err: err}
	}
	if p.Action == nil || p.Action.String() == "" {
		return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryTask, Reason: "missing task_action"}
	}
	rec := intent.ActionRecord{Category: intent.CategoryTask, Kind: normalizeKind(p.Action.String()), Payload: intent.Payload{}}
	switch rec.Kind {
	case intent.KindAdd:
		if p.Details.String() == "" {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryTask, Reason: "missing task description"}
		}
		rec.Payload[intent.FieldDescription] = p.Details.String()
	case intent.KindDelete, intent.KindHelp:
		id, ok := parseIdentifier(p.Details.String())
		if !ok {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryTask, Reason: "missing task number"}
		}
		rec.Payload[intent.FieldID] = strconv.Itoa(id)
	default:
		if d := p.Details.String(); d != "" {
			rec.Payload[intent.FieldDescription] = d
		}
	}
	return rec, nil
}

type scheduleTimes struct {
	Title       looseString `json:"title"`
	Description looseString `json:"description"`
	StartTime   looseString `json:"start_time"`
	EndTime     looseString `json:"end_time"`
	TimeZone    looseString `json:"time_zone"`
}

type schedulePayload struct {
	Action       *looseString   `json:"schedule_action"`
	EventDetails *scheduleTimes `json:"event_details"`
	TimeRange    *scheduleTimes `json:"time_range"`
}

func (r Resolver) parseSchedule(out string) (intent.ActionRecord, error) {
	var p schedulePayload
	if err := modelout.Decode(out, &p); err != nil {
		return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "unparseable payload", Err: err}
	}
	if p.Action == nil || p.Action.String() == "" {
		return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "missing schedule_action"}
	}
	rec := intent.ActionRecord{Category: intent.CategorySchedule, Kind: normalizeKind(p.Action.String()), Payload: intent.Payload{}}
	switch rec.Kind {
	case intent.KindAdd:
		if p.EventDetails == nil {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "missing event_details"}
		}
		d := p.EventDetails
		if d.Title.String() == "" {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "missing event title"}
		}
		zone := r.zoneOr(d.TimeZone.String())
		start, err := schedule.ParseLocal(d.StartTime.String(), zone)
		if err != nil {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "bad start_time", Err: err}
		}
		end := start.Add(defaultEventLength)
		if d.EndTime.String() != "" {
			if end, err = schedule.ParseLocal(d.EndTime.String(), zone); err != nil {
				return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "bad end_time", Err: err}
			}
		}
		description := d.Description.String()
		if description == "" {
			description = d.Title.String()
		}
		rec.Payload[intent.FieldTitle] = d.Title.String()
		rec.Payload[intent.FieldDescription] = description
		rec.Payload[intent.FieldStartTime] = start.Format(schedule.LocalLayout)
		rec.Payload[intent.FieldEndTime] = end.Format(schedule.LocalLayout)
		rec.Payload[intent.FieldTimeZone] = zone
	case intent.KindView:
		if p.TimeRange == nil {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "missing time_range"}
		}
		tr := p.TimeRange
		zone := r.zoneOr(tr.TimeZone.String())
		start, err := schedule.ParseLocal(tr.StartTime.String(), zone)
		if err != nil {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "bad start_time", Err: err}
		}
		end, err := schedule.ParseLocal(tr.EndTime.String(), zone)
		if err != nil {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategorySchedule, Reason: "bad end_time", Err: err}
		}
		rec.Payload[intent.FieldStartTime] = start.Format(schedule.LocalLayout)
		rec.Payload[intent.FieldEndTime] = end.Format(schedule.LocalLayout)
		rec.Payload[intent.FieldTimeZone] = zone
	}
	return rec, nil
}

type reminderPayload struct {
	Action   *looseString `json:"reminder_action"`
	Details  looseString  `json:"details"`
	RemindAt looseString  `json:"remind_at"`
}

func (r Resolver) parseReminder(out string) (intent.ActionRecord, error) {
	var p reminderPayload
	if err := modelout.Decode(out, &p); err != nil {
		return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryReminder, Reason: "unparseable payload", Err: err}
	}
	if p.Action == nil || p.Action.String() == "" {
		return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryReminder, Reason: "missing reminder_action"}
	}
	rec := intent.ActionRecord{Category: intent.CategoryReminder, Kind: normalizeKind(p.Action.String()), Payload: intent.Payload{}}
	switch rec.Kind {
	case intent.KindAdd:
		if p.Details.String() == "" {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryReminder, Reason: "missing reminder text"}
		}
		rec.Payload[intent.FieldText] = p.Details.String()
		if at := p.RemindAt.String(); at != "" {
			t, err := schedule.ParseLocal(at, r.zone())
			if err != nil {
				return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryReminder, Reason: "bad remind_at", Err: err}
			}
			rec.Payload[intent.FieldRemindAt] = t.Format(time.RFC3339)
		}
	case intent.KindDelete:
		id, ok := parseIdentifier(p.Details.String())
		if !ok {
			return intent.ActionRecord{}, &DetailParseError{Category: intent.CategoryReminder, Reason: "missing reminder number"}
		}
		rec.Payload[intent.FieldID] = strconv.Itoa(id)
	}
	return rec, nil
}

func normalizeKind(raw string) intent.Kind {
	return intent.Kind(strings.ToLower(strings.TrimSpace(raw)))
}

func (r Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r Resolver) zone() string {
	if strings.TrimSpace(r.TimeZone) == "" {
		return "UTC"
	}
	return r.TimeZone
}

func (r Resolver) zoneOr(given string) string {
	if given == "" {
		return r.zone()
	}
	if _, err := schedule.LoadZone(given); err != nil {
		return r.zone()
	}
	return given
}
