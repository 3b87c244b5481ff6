package dto

type DecodeInput struct {
	Role     string
	Location string
}

type EncodeInput struct {
	View     string
	Tab      string
	Filter   string
	TaskJSON string
}

type TaskOutput struct {
	TaskID             string   `json:"taskId"`
	Topic              string   `json:"topic"`
	ContentType        string   `json:"contentType"`
	Guidelines         string   `json:"guidelines,omitempty"`
	PrerequisiteTopics []string `json:"prerequisiteTopics"`
}

type RouteOutput struct {
	Location string      `json:"location"`
	Table    string      `json:"table"`
	View     string      `json:"view"`
	Tab      string      `json:"tab"`
	Filter   string      `json:"filter"`
	Task     *TaskOutput `json:"task,omitempty"`
}
