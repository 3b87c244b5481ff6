package dto

import "time"

type MetricOutput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type UserOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreatorOutput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AssignedCount int    `json:"assignedCount"`
	PendingCount  int    `json:"pendingCount"`
}

type PromptOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider,omitempty"`
	Template  string    `json:"template"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GuidelineOutput struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ContentType string    `json:"contentType"`
	Body        string    `json:"body"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateUserInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"oneof=CREATOR ADMIN SUPER_ADMIN"`
}

type UpdateUserInput struct {
	ID     string  `json:"id" validate:"notblank"`
	Role   *string `json:"role" validate:"omitempty,oneof=CREATOR ADMIN SUPER_ADMIN"`
	Active *bool   `json:"active"`
}

type SavePromptInput struct {
	ID       string `json:"id" validate:"notblank"`
	Template string `json:"template" validate:"notblank"`
}

type SaveGuidelineInput struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"notblank"`
	ContentType string `json:"contentType" validate:"oneof=ASSIGNMENT LECTURE_NOTES PRE_READ"`
	Body        string `json:"body" validate:"notblank"`
}
