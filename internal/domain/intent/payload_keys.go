package intent

const (
	FieldDescription = "description"
	FieldID          = "id"
	FieldText        = "text"
	FieldRemindAt    = "remind_at"
	FieldTitle       = "title"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldTimeZone    = "time_zone"
)
