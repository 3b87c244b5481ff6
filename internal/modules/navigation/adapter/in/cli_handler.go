package in

import (
	"context"

	navigationdto "cvp/internal/modules/navigation/dto"
	navigationin "cvp/internal/modules/navigation/port/in"
)

type CLIHandler struct {
	usecase navigationin.Usecase
}

func NewCLIHandler(usecase navigationin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Decode(ctx context.Context, role, location string) (navigationdto.RouteOutput, error) {
	return h.usecase.Decode(ctx, navigationdto.DecodeInput{Role: role, Location: location})
}

func (h CLIHandler) Encode(ctx context.Context, view, tab, filter, taskJSON string) (navigationdto.RouteOutput, error) {
	return h.usecase.Encode(ctx, navigationdto.EncodeInput{View: view, Tab: tab, Filter: filter, TaskJSON: taskJSON})
}
