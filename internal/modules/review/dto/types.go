package dto

import "time"

type ProviderScoreOutput struct {
	Provider string             `json:"provider"`
	Score    float64            `json:"score"`
	Feedback string             `json:"feedback,omitempty"`
	Criteria map[string]float64 `json:"criteria,omitempty"`
}

type ValidationOutput struct {
	Round1Results  []ProviderScoreOutput `json:"round1Results"`
	Round2Results  []ProviderScoreOutput `json:"round2Results"`
	ConsensusScore float64               `json:"consensusScore"`
	Recommendation string                `json:"recommendation,omitempty"`
	ValidatedAt    time.Time             `json:"validatedAt"`
	Report         string                `json:"-"`
}

type ContentOutput struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	ContentType string            `json:"contentType"`
	Topic       string            `json:"topic"`
	Status      string            `json:"status"`
	CreatorName string            `json:"creatorName,omitempty"`
	Body        string            `json:"body,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	Validation  *ValidationOutput `json:"validation,omitempty"`
}

type QueueOutput struct {
	Items     []ContentOutput `json:"items"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Cached    bool            `json:"cached"`
}

type SubmitInput struct {
	ID       string
	Action   string
	Feedback string
}

type ExportInput struct {
	ID  string
	Dir string
}

type ExportOutput struct {
	ID   string
	Path string
}
