package out

import (
	"encoding/json"
	"fmt"

	"cvp/internal/modules/review/domain"
	"cvp/internal/platform/apiclient"
)

type scoreWire struct {
	Provider string             `json:"provider"`
	Model    string             `json:"model"`
	Score    float64            `json:"score"`
	Feedback string             `json:"feedback"`
	Criteria map[string]float64 `json:"criteria"`
}

type validationWire struct {
	Round1Results  []scoreWire    `json:"round1Results"`
	Round2Results  []scoreWire    `json:"round2Results"`
	ConsensusScore float64        `json:"consensusScore"`
	FinalScore     float64        `json:"finalScore"`
	Recommendation string         `json:"recommendation"`
	ValidatedAt    apiclient.Time `json:"validatedAt"`
}

type creatorWire struct {
	ID   apiclient.ID
	Name string
}

// UnmarshalJSON accepts a bare id or a populated user object.
func (c *creatorWire) UnmarshalJSON(raw []byte) error {
	if err := json.Unmarshal(raw, &c.ID); err != nil {
		return err
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		c.Name = obj.Name
	}
	return nil
}

type contentWire struct {
	ID               string          `json:"id"`
	MongoID          string          `json:"_id"`
	Title            string          `json:"title"`
	ContentType      string          `json:"contentType"`
	Type             string          `json:"type"`
	Topic            string          `json:"topic"`
	Status           string          `json:"status"`
	CreatorID        string          `json:"creatorId"`
	CreatorName      string          `json:"creatorName"`
	Creator          *creatorWire    `json:"creator"`
	Body             string          `json:"body"`
	Content          string          `json:"content"`
	CreatedAt        apiclient.Time  `json:"createdAt"`
	ValidationResult *validationWire `json:"validationResult"`
	Validation       *validationWire `json:"validation"`
}

func (w contentWire) id() string {
	if w.ID != "" {
		return w.ID
	}
	return w.MongoID
}

func (w contentWire) validation() *validationWire {
	if w.ValidationResult != nil {
		return w.ValidationResult
	}
	return w.Validation
}

func (w contentWire) toDomain() domain.ContentItem {
	item := domain.ContentItem{
		ID:          w.id(),
		Title:       w.Title,
		ContentType: domain.ContentType(firstNonEmpty(w.ContentType, w.Type)),
		Topic:       w.Topic,
		Status:      domain.Status(w.Status),
		CreatorID:   w.CreatorID,
		CreatorName: w.CreatorName,
		Body:        firstNonEmpty(w.Body, w.Content),
		CreatedAt:   w.CreatedAt.Time,
	}
	if w.Creator != nil {
		if item.CreatorID == "" {
			item.CreatorID = string(w.Creator.ID)
		}
		if item.CreatorName == "" {
			item.CreatorName = w.Creator.Name
		}
	}
	if v := w.validation(); v != nil {
		result := v.toDomain()
		item.Validation = &result
	}
	return item
}

func (w validationWire) toDomain() domain.ValidationResult {
	score := w.ConsensusScore
	if score == 0 {
		score = w.FinalScore
	}
	return domain.ValidationResult{
		Round1Results:  toScores(w.Round1Results),
		Round2Results:  toScores(w.Round2Results),
		ConsensusScore: score,
		Recommendation: w.Recommendation,
		ValidatedAt:    w.ValidatedAt.Time,
	}
}

func toScores(in []scoreWire) []domain.ProviderScore {
	out := make([]domain.ProviderScore, 0, len(in))
	for _, s := range in {
		out = append(out, domain.ProviderScore{
			Provider: firstNonEmpty(s.Provider, s.Model),
			Score:    s.Score,
			Feedback: s.Feedback,
			Criteria: s.Criteria,
		})
	}
	return out
}

// decodeList accepts a bare array or an object wrapping it.
func decodeList(raw json.RawMessage) ([]contentWire, error) {
	var list []contentWire
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Content []contentWire `json:"content"`
		Items   []contentWire `json:"items"`
		Queue   []contentWire `json:"queue"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode content list: %w", err)
	}
	switch {
	case wrapped.Content != nil:
		return wrapped.Content, nil
	case wrapped.Queue != nil:
		return wrapped.Queue, nil
	default:
		return wrapped.Items, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
