package in

import (
	"context"
	"encoding/json"
	"fmt"

	"cvp/internal/modules/content/dto"
	contentin "cvp/internal/modules/content/port/in"
	reviewdto "cvp/internal/modules/review/dto"
	apperrors "cvp/internal/platform/errors"
)

type CLIHandler struct {
	usecase contentin.Usecase
}

func NewCLIHandler(usecase contentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Submit sends a body file. taskJSON is the task payload carried by a
// create-content location and may be empty.
func (h CLIHandler) Submit(ctx context.Context, taskJSON, title, contentType, topic, filePath string) (dto.SubmitOutput, error) {
	input := dto.SubmitInput{Title: title, ContentType: contentType, Topic: topic, FilePath: filePath}
	if taskJSON != "" {
		task := &dto.TaskInput{}
		if err := json.Unmarshal([]byte(taskJSON), task); err != nil {
			return dto.SubmitOutput{}, fmt.Errorf("%w: task: %v", apperrors.ErrInvalidInput, err)
		}
		input.Task = task
	}
	return h.usecase.Submit(ctx, input)
}

func (h CLIHandler) Mine(ctx context.Context) ([]reviewdto.ContentOutput, error) {
	return h.usecase.Mine(ctx)
}

func (h CLIHandler) Open(ctx context.Context, path string) error {
	return h.usecase.Open(ctx, path)
}
