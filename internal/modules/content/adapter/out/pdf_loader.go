package out

import (
	"context"
	"fmt"
	"strings"

	contentout "cvp/internal/modules/content/port/out"
	"rsc.io/pdf"
)

type LocalPDFLoader struct{}

func NewLocalPDFLoader() contentout.BodyLoader {
	return &LocalPDFLoader{}
}

// Load extracts the text of every page, one paragraph per page.
func (l *LocalPDFLoader) Load(ctx context.Context, path string) (text string, err error) {
	// rsc.io/pdf panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()
	doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	pages := make([]string, 0, total)
	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := doc.Page(n)
		if p.V.IsNull() {
			return "", fmt.Errorf("pdf page %d is null", n)
		}
		content := p.Content()
		parts := make([]string, 0, len(content.Text))
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			parts = append(parts, t.S)
		}
		if len(parts) > 0 {
			pages = append(pages, strings.Join(parts, " "))
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
