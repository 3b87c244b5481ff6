package dto

import "time"

type AssignmentOutput struct {
	ID                 string    `json:"id"`
	Topic              string    `json:"topic"`
	ContentType        string    `json:"contentType"`
	Status             string    `json:"status"`
	ContentStatus      string    `json:"contentStatus,omitempty"`
	DueDate            time.Time `json:"dueDate"`
	Guidelines         string    `json:"guidelines,omitempty"`
	PrerequisiteTopics []string  `json:"prerequisiteTopics"`
	CreatorName        string    `json:"creatorName,omitempty"`
	TaskJSON           string    `json:"-"`
}

type CreateInput struct {
	Topic              string    `json:"topic" validate:"notblank"`
	ContentType        string    `json:"contentType" validate:"oneof=ASSIGNMENT LECTURE_NOTES PRE_READ"`
	CreatorID          string    `json:"creatorId" validate:"notblank"`
	DueDate            time.Time `json:"dueDate"`
	Guidelines         string    `json:"guidelines"`
	PrerequisiteTopics []string  `json:"prerequisiteTopics" validate:"dive,notblank"`
}
