package in

import (
	"context"

	"cvp/internal/modules/navigation/domain"
	"cvp/internal/modules/navigation/dto"
)

// Navigator is one dashboard's view of the shared history.
type Navigator interface {
	Mount() (unmount func())
	ApplyRouteFromLocation() domain.State
	NavigateTo(target domain.State) domain.State
	Back() bool
	Forward() bool
	State() domain.State
	Location() domain.Location
	Table() domain.RouteTable
	OnChange(fn func(domain.State)) (cancel func())
}

type Usecase interface {
	// ForRole builds a navigator over the shared history with the role's route table.
	ForRole(role string) Navigator
	// Assign jumps to a raw location as if typed into the address bar.
	Assign(raw string)
	Decode(ctx context.Context, input dto.DecodeInput) (dto.RouteOutput, error)
	Encode(ctx context.Context, input dto.EncodeInput) (dto.RouteOutput, error)
}
