package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cvp/internal/modules/navigation/domain"
	"cvp/internal/modules/navigation/dto"
	navigationin "cvp/internal/modules/navigation/port/in"
	"cvp/internal/modules/navigation/service"
	apperrors "cvp/internal/platform/errors"
)

type Interactor struct {
	history *service.History
	logger  *slog.Logger
}

func NewInteractor(history *service.History, logger *slog.Logger) navigationin.Usecase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interactor{history: history, logger: logger}
}

func (i *Interactor) ForRole(role string) navigationin.Navigator {
	table := domain.TableForRole(role)
	return service.NewNavigator(i.history, table, i.logger.With("table", table.Name))
}

func (i *Interactor) Assign(raw string) {
	i.history.Assign(domain.ParseLocation(raw))
}

func (i *Interactor) Decode(_ context.Context, input dto.DecodeInput) (dto.RouteOutput, error) {
	table := domain.TableForRole(strings.ToUpper(strings.TrimSpace(input.Role)))
	loc := domain.ParseLocation(input.Location)
	return toOutput(table.Name, loc, table.Resolve(loc, i.logger)), nil
}

// Encode is strict where Decode is lenient: unknown views, filters or a bad
// task payload are rejected instead of falling back.
func (i *Interactor) Encode(_ context.Context, input dto.EncodeInput) (dto.RouteOutput, error) {
	state := domain.State{
		View:   domain.ViewKind(strings.TrimSpace(input.View)),
		Tab:    domain.Tab(strings.TrimSpace(input.Tab)),
		Filter: domain.FilterAll,
	}
	switch state.View {
	case "":
		state.View = domain.ViewDashboard
	case domain.ViewDashboard, domain.ViewCreateContent, domain.ViewSettings:
	default:
		return dto.RouteOutput{}, fmt.Errorf("%w: unknown view %q", apperrors.ErrInvalidInput, input.View)
	}
	if raw := strings.TrimSpace(input.Filter); raw != "" {
		filter := domain.ParseFilter(raw)
		if string(filter) != strings.ToLower(raw) {
			return dto.RouteOutput{}, fmt.Errorf("%w: unknown filter %q", apperrors.ErrInvalidInput, raw)
		}
		state.Filter = filter
		if state.Tab == "" {
			state.Tab = domain.TabAssignments
		}
	}
	if strings.TrimSpace(input.TaskJSON) != "" {
		task, err := domain.ParseTaskPayload(input.TaskJSON)
		if err != nil {
			return dto.RouteOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		state.Task = task
		state.View = domain.ViewCreateContent
	}
	loc := domain.Encode(state)
	table := domain.ShellTable()
	return toOutput(table.Name, loc, state), nil
}

func toOutput(table string, loc domain.Location, state domain.State) dto.RouteOutput {
	out := dto.RouteOutput{
		Location: loc.String(),
		Table:    table,
		View:     string(state.View),
		Tab:      string(state.Tab),
		Filter:   string(state.Filter),
	}
	if state.Task != nil {
		out.Task = &dto.TaskOutput{
			TaskID:             state.Task.TaskID,
			Topic:              state.Task.Topic,
			ContentType:        state.Task.ContentType,
			Guidelines:         state.Task.Guidelines,
			PrerequisiteTopics: state.Task.PrerequisiteTopics,
		}
	}
	return out
}
