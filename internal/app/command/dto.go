package command

import "assistant/internal/domain/intent"

type Request struct {
	Input string
}

type ItemOutcome struct {
	Item   intent.Item          `json:"item"`
	Record *intent.ActionRecord `json:"record,omitempty"`
	Result intent.Result        `json:"result"`
}

type Response struct {
	RequestID string        `json:"request_id"`
	Text      string        `json:"response"`
	Outcome   string        `json:"outcome"`
	Items     []ItemOutcome `json:"items,omitempty"`
}
