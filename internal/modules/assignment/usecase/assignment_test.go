package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cvp/internal/modules/assignment/domain"
	"cvp/internal/modules/assignment/dto"
	"cvp/internal/modules/assignment/service"
	"cvp/internal/modules/assignment/usecase"
	"cvp/internal/platform/clock"
	apperrors "cvp/internal/platform/errors"
)

type fakeGateway struct {
	items   []domain.Assignment
	created []domain.NewAssignment
}

func (f *fakeGateway) MyTasks(context.Context) ([]domain.Assignment, error) { return f.items, nil }
func (f *fakeGateway) List(context.Context) ([]domain.Assignment, error)    { return f.items, nil }

func (f *fakeGateway) Create(_ context.Context, in domain.NewAssignment) (domain.Assignment, error) {
	f.created = append(f.created, in)
	return domain.Assignment{ID: "new", Topic: in.Topic, ContentType: in.ContentType, Status: domain.StatusAssigned}, nil
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMyTasksAppliesFilter(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{items: []domain.Assignment{
		{ID: "a", Status: domain.StatusAssigned},
		{ID: "b", Status: domain.StatusCompleted, ContentStatus: "REJECTED"},
	}}
	uc := usecase.NewInteractor(service.NewAssignmentService(clock.Fixed{At: now}, gw, nil))

	rejected, err := uc.MyTasks(context.Background(), "rejected")
	if err != nil {
		t.Fatalf("my tasks: %v", err)
	}
	if len(rejected) != 1 || rejected[0].ID != "b" {
		t.Fatalf("unexpected rejected tasks: %+v", rejected)
	}

	all, err := uc.MyTasks(context.Background(), "bogus")
	if err != nil {
		t.Fatalf("my tasks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unknown filter should list everything, got %d", len(all))
	}
	if all[0].TaskJSON != `{"taskId":"a","topic":"","contentType":"","prerequisiteTopics":[]}` {
		t.Fatalf("unexpected task json: %s", all[0].TaskJSON)
	}
}

func TestCreateValidatesBeforeRequest(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := usecase.NewInteractor(service.NewAssignmentService(clock.Fixed{At: now}, gw, nil))

	_, err := uc.Create(context.Background(), dto.CreateInput{Topic: "  ", ContentType: "ASSIGNMENT", CreatorID: "u1"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	_, err = uc.Create(context.Background(), dto.CreateInput{Topic: "Sorting", ContentType: "ESSAY", CreatorID: "u1"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid content type, got %v", err)
	}
	if len(gw.created) != 0 {
		t.Fatalf("invalid input reached the gateway")
	}

	out, err := uc.Create(context.Background(), dto.CreateInput{Topic: " Sorting ", ContentType: "lecture_notes", CreatorID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID != "new" || gw.created[0].Topic != "Sorting" || gw.created[0].ContentType != "LECTURE_NOTES" {
		t.Fatalf("unexpected create: %+v %+v", out, gw.created)
	}
}
