package out

import (
	"context"
	"fmt"
	"os"

	contentout "cvp/internal/modules/content/port/out"
)

type LocalMarkdownLoader struct{}

func NewLocalMarkdownLoader() contentout.BodyLoader {
	return &LocalMarkdownLoader{}
}

func (l *LocalMarkdownLoader) Load(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	return string(b), nil
}
