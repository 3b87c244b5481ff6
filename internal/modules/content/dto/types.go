package dto

type TaskInput struct {
	TaskID             string   `json:"taskId"`
	Topic              string   `json:"topic"`
	ContentType        string   `json:"contentType"`
	Guidelines         string   `json:"guidelines,omitempty"`
	PrerequisiteTopics []string `json:"prerequisiteTopics"`
}

// SubmitInput carries the body inline or as a file path; FilePath wins when
// both are set.
type SubmitInput struct {
	Task        *TaskInput
	Title       string
	ContentType string
	Topic       string
	Body        string
	FilePath    string
}

type DraftOutput struct {
	TaskID      string `json:"taskId,omitempty"`
	Title       string `json:"title" validate:"notblank"`
	ContentType string `json:"contentType" validate:"oneof=ASSIGNMENT LECTURE_NOTES PRE_READ"`
	Topic       string `json:"topic" validate:"notblank"`
	Body        string `json:"content" validate:"notblank"`
}

type SubmitOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Title  string `json:"title"`
}
