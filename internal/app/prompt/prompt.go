// Package prompt holds the system prompts sent to the completion service and
// the delimiter convention that separates instructions from user input.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

const Delimiter = "```"

const nowLayout = "2006-01-02 15:04:05"

// Wrap fences untrusted user text. Delimiters already inside the text are
// neutralized so the input cannot close the fence early.
func Wrap(userText string) string {
	cleaned := strings.ReplaceAll(userText, Delimiter, "'''")
	return Delimiter + cleaned + Delimiter
}

func Classification() string {
	return `You split a user's message into separate requests and label each one.
The message is delimited with three backticks.

Steps:
1. Count the distinct requests in the message.
2. Give each request exactly one category: "task", "schedule" or "reminder".
3. Rewrite each request as a self-contained instruction another assistant can act on.
4. Keep the requests in the order they appear in the message.

Reply with JSON only, in this shape. Both arrays must have the same length:
{
  "classification": [{"category": "<category>"}],
  "details": ["<instruction for the request>"]
}

Category guide:
- "task": to-do items. Adding, deleting, listing tasks or asking for help with a task.
- "schedule": calendar events. Creating events or showing events in a time range.
- "reminder": reminders. Adding, deleting or listing reminders.

Examples:
Message: "Add a task to finish my project and another one to tidy my room."
Reply: {"classification": [{"category": "task"}, {"category": "task"}], "details": ["add task: Finish project", "add task: Tidy room"]}

Message: "Add task to cook spaghetti and schedule an event for 20-01-2025 at 6 PM."
Reply: {"classification": [{"category": "task"}, {"category": "schedule"}], "details": ["add task: Cook spaghetti", "schedule an event for 2025-01-20 at 6 PM"]}

Message: "Give me instructions for task 3. Also remind me in 2 hours to join the meeting."
Reply: {"classification": [{"category": "task"}, {"category": "reminder"}], "details": ["help with task 3", "add a reminder in 2 hours to join the meeting"]}`
}

func TaskDetail() string {
	return `You turn one task request into a task command.
The request is delimited with three backticks.

Actions:
- "add": create a task. details is the task description.
- "delete": delete a task. details is the task number.
- "help": explain how to do a task. details is the task number.
- "list": show all tasks. details is empty.

Reply with JSON only:
{"task_action": "<add|delete|help|list>", "details": "<details>"}

Examples:
Request: "add task: Finish project 'Platon'" -> {"task_action": "add", "details": "Finish project 'Platon'"}
Request: "delete task: 2" -> {"task_action": "delete", "details": "2"}
Request: "help with task 3" -> {"task_action": "help", "details": "3"}
Request: "show my tasks" -> {"task_action": "list", "details": ""}`
}

func ScheduleDetail(now time.Time, zone string) string {
	return fmt.Sprintf(`You turn one calendar request into a calendar command.
The request is delimited with three backticks.
Current date and time: %s
Default time zone: %s

Actions:
- "add": create an event.
- "view": list events in a time range.

Times use the format YYYY-MM-DDTHH:MM:SS in the given time zone.

For "add" reply:
{"schedule_action": "add", "event_details": {"title": "<title>", "description": "<description>", "start_time": "<time>", "end_time": "<time>", "time_zone": "%s"}}

For "view" reply:
{"schedule_action": "view", "time_range": {"start_time": "<time>", "end_time": "<time>", "time_zone": "%s"}}

If no end time is given for an event, make it one hour long.
Reply with the JSON only, nothing else.`, now.Format(nowLayout), zone, zone, zone)
}

func ReminderDetail(now time.Time, zone string) string {
	return fmt.Sprintf(`You turn one reminder request into a reminder command.
The request is delimited with three backticks.
Current date and time: %s
Time zone: %s

Actions:
- "add": create a reminder. details is what to remind about, remind_at is when.
- "delete": delete a reminder. details is the reminder number.
- "list": show all reminders. details is empty.

remind_at uses the format YYYY-MM-DDTHH:MM:SS, or is empty when no time is given.

Reply with JSON only:
{"reminder_action": "<add|delete|list>", "details": "<details>", "remind_at": "<time or empty>"}`, now.Format(nowLayout), zone)
}

// TaskHelp seeds the nested help call with the current task list.
func TaskHelp(taskList string) string {
	return `You are a helpful assistant that explains how to get a task done.
The user's current tasks are:
` + taskList + `

The user asks for help with one of these tasks; the request is delimited with three backticks.
Give short, practical, step-by-step guidance in plain text. Do not use JSON.`
}
