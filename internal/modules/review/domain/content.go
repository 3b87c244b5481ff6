package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type ContentType string

const (
	ContentAssignment   ContentType = "ASSIGNMENT"
	ContentLectureNotes ContentType = "LECTURE_NOTES"
	ContentPreRead      ContentType = "PRE_READ"
)

func (t ContentType) Label() string {
	switch t {
	case ContentAssignment:
		return "Assignment"
	case ContentLectureNotes:
		return "Lecture Notes"
	case ContentPreRead:
		return "Pre-Read"
	default:
		return string(t)
	}
}

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusValidating Status = "VALIDATING"
	StatusInReview   Status = "IN_REVIEW"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

type ProviderScore struct {
	Provider string             `json:"provider"`
	Score    float64            `json:"score"`
	Feedback string             `json:"feedback,omitempty"`
	Criteria map[string]float64 `json:"criteria,omitempty"`
}

// ValidationResult is computed by the server's dual model pipeline; the
// client only renders it.
type ValidationResult struct {
	Round1Results  []ProviderScore `json:"round1Results"`
	Round2Results  []ProviderScore `json:"round2Results"`
	ConsensusScore float64         `json:"consensusScore"`
	Recommendation string          `json:"recommendation,omitempty"`
	ValidatedAt    time.Time       `json:"validatedAt"`
}

type ContentItem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	ContentType ContentType       `json:"contentType"`
	Topic       string            `json:"topic"`
	Status      Status            `json:"status"`
	CreatorID   string            `json:"creatorId,omitempty"`
	CreatorName string            `json:"creatorName,omitempty"`
	Body        string            `json:"body,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	Validation  *ValidationResult `json:"validation,omitempty"`
}

// Report renders the validation result as markdown. An item without a
// result reports that validation is pending.
func (v *ValidationResult) Report() string {
	if v == nil {
		return "_Validation pending._\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Consensus score:** %.1f", v.ConsensusScore)
	if v.Recommendation != "" {
		fmt.Fprintf(&b, " (%s)", v.Recommendation)
	}
	b.WriteString("\n")
	writeRound(&b, "Round 1", v.Round1Results)
	writeRound(&b, "Round 2", v.Round2Results)
	return b.String()
}

func writeRound(b *strings.Builder, title string, scores []ProviderScore) {
	if len(scores) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n| Provider | Score | Feedback |\n|---|---|---|\n", title)
	for _, s := range scores {
		fmt.Fprintf(b, "| %s | %.1f | %s |\n", s.Provider, s.Score, oneLine(s.Feedback))
		if len(s.Criteria) == 0 {
			continue
		}
		keys := make([]string, 0, len(s.Criteria))
		for k := range s.Criteria {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s %.1f", k, s.Criteria[k]))
		}
		fmt.Fprintf(b, "| | | _%s_ |\n", strings.Join(parts, ", "))
	}
}

func oneLine(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", "\\|")
}
