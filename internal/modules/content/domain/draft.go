package domain

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// FormatOf picks the loader for a body file from its extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return FormatPDF
	}
	return FormatMarkdown
}

// Task is the assignment a draft answers, if any.
type Task struct {
	ID                 string
	Topic              string
	ContentType        string
	Guidelines         string
	PrerequisiteTopics []string
}

type Draft struct {
	Task        *Task
	Title       string
	ContentType string
	Topic       string
	Body        string
}

// Meta is the optional frontmatter of a markdown body file. Fields the
// caller left empty are taken from it.
type Meta struct {
	Title       string `yaml:"title"`
	Topic       string `yaml:"topic"`
	ContentType string `yaml:"contentType"`
}

// Fill completes empty draft fields, first from meta, then from the task.
func (d *Draft) Fill(meta Meta) {
	if d.Title == "" {
		d.Title = strings.TrimSpace(meta.Title)
	}
	if d.Topic == "" {
		d.Topic = strings.TrimSpace(meta.Topic)
	}
	if d.ContentType == "" {
		d.ContentType = strings.TrimSpace(meta.ContentType)
	}
	if d.Task != nil {
		if d.Topic == "" {
			d.Topic = d.Task.Topic
		}
		if d.ContentType == "" {
			d.ContentType = d.Task.ContentType
		}
	}
	d.ContentType = strings.ToUpper(d.ContentType)
}

type Created struct {
	ID     string
	Status string
}
