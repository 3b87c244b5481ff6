package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cvp/internal/modules/admin/domain"
	"cvp/internal/modules/admin/dto"
	adminin "cvp/internal/modules/admin/port/in"
	"cvp/internal/modules/admin/service"
	"cvp/internal/modules/admin/usecase"
	apperrors "cvp/internal/platform/errors"
)

type fakeGateway struct {
	calls   []string
	created []domain.NewUser
	patches []domain.UserPatch
}

func (f *fakeGateway) Stats(context.Context) (map[string]any, error) {
	return map[string]any{"pending": 2.0, "byType": map[string]any{"ASSIGNMENT": 1.0}}, nil
}

func (f *fakeGateway) AssignedCreators(context.Context) ([]domain.Creator, error) {
	return []domain.Creator{{ID: "u1", Name: "Ada"}}, nil
}

func (f *fakeGateway) Analytics(context.Context) (map[string]any, error) {
	return map[string]any{}, nil
}

func (f *fakeGateway) Users(context.Context) ([]domain.User, error) { return nil, nil }

func (f *fakeGateway) CreateUser(_ context.Context, u domain.NewUser) (domain.User, error) {
	f.created = append(f.created, u)
	return domain.User{ID: "u9", Name: u.Name, Email: u.Email, Role: u.Role, Active: true}, nil
}

func (f *fakeGateway) UpdateUser(_ context.Context, id string, p domain.UserPatch) (domain.User, error) {
	f.patches = append(f.patches, p)
	return domain.User{ID: id, Role: *p.Role}, nil
}

func (f *fakeGateway) Prompts(context.Context) ([]domain.Prompt, error) { return nil, nil }

func (f *fakeGateway) SavePrompt(_ context.Context, id, template string) (domain.Prompt, error) {
	f.calls = append(f.calls, "prompt:"+id)
	return domain.Prompt{ID: id, Template: template}, nil
}

func (f *fakeGateway) Guidelines(context.Context) ([]domain.Guideline, error) { return nil, nil }

func (f *fakeGateway) CreateGuideline(_ context.Context, g domain.Guideline) (domain.Guideline, error) {
	f.calls = append(f.calls, "create")
	g.ID = "g-new"
	return g, nil
}

func (f *fakeGateway) UpdateGuideline(_ context.Context, g domain.Guideline) (domain.Guideline, error) {
	f.calls = append(f.calls, "update:"+g.ID)
	return g, nil
}

func newUsecase(gw *fakeGateway) adminin.Usecase {
	return usecase.NewInteractor(service.NewAdminService(gw, gw, nil))
}

func TestStatsFlattened(t *testing.T) {
	t.Parallel()
	stats, err := newUsecase(&fakeGateway{}).Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := []dto.MetricOutput{{Key: "byType.ASSIGNMENT", Value: "1"}, {Key: "pending", Value: "2"}}
	if len(stats) != 2 || stats[0] != want[0] || stats[1] != want[1] {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newUsecase(gw)
	ctx := context.Background()

	bad := []dto.CreateUserInput{
		{Name: " ", Email: "a@example.com", Password: "longenough", Role: "CREATOR"},
		{Name: "Ann", Email: "not-an-email", Password: "longenough", Role: "CREATOR"},
		{Name: "Ann", Email: "a@example.com", Password: "short", Role: "CREATOR"},
		{Name: "Ann", Email: "a@example.com", Password: "longenough", Role: "OWNER"},
	}
	for _, in := range bad {
		if _, err := uc.CreateUser(ctx, in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
	if len(gw.created) != 0 {
		t.Fatalf("invalid users reached the gateway")
	}

	out, err := uc.CreateUser(ctx, dto.CreateUserInput{Name: "Ann", Email: "a@example.com", Password: "longenough", Role: "superadmin"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if out.Role != "SUPER_ADMIN" || gw.created[0].Role != "SUPER_ADMIN" {
		t.Fatalf("role not normalized: %+v", out)
	}
}

func TestUpdateUserRequiresAChange(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newUsecase(gw)
	if _, err := uc.UpdateUser(context.Background(), dto.UpdateUserInput{ID: "u1"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	role := "admin"
	out, err := uc.UpdateUser(context.Background(), dto.UpdateUserInput{ID: "u1", Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Role != "ADMIN" || len(gw.patches) != 1 {
		t.Fatalf("unexpected update: %+v", out)
	}
}

func TestSaveGuidelineDispatchesOnID(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := newUsecase(gw)
	ctx := context.Background()

	created, err := uc.SaveGuideline(ctx, dto.SaveGuidelineInput{Title: "Tone", ContentType: "pre_read", Body: "Be kind"})
	if err != nil {
		t.Fatalf("create guideline: %v", err)
	}
	if created.ID != "g-new" || created.ContentType != "PRE_READ" {
		t.Fatalf("unexpected guideline: %+v", created)
	}
	if _, err := uc.SaveGuideline(ctx, dto.SaveGuidelineInput{ID: "g1", Title: "Tone", ContentType: "ASSIGNMENT", Body: "x"}); err != nil {
		t.Fatalf("update guideline: %v", err)
	}
	if _, err := uc.SaveGuideline(ctx, dto.SaveGuidelineInput{ID: "g1", Title: "", ContentType: "ASSIGNMENT", Body: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.SavePrompt(ctx, dto.SavePromptInput{ID: "p1", Template: " "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid prompt, got %v", err)
	}
	want := []string{"create", "update:g1"}
	if len(gw.calls) != 2 || gw.calls[0] != want[0] || gw.calls[1] != want[1] {
		t.Fatalf("unexpected calls: %v", gw.calls)
	}
}
