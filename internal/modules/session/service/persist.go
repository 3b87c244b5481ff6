package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"cvp/internal/modules/session/domain"
	sessionout "cvp/internal/modules/session/port/out"
)

// Persist mirrors every state change into store: both keys are written
// together when authenticated, otherwise both are deleted.
func Persist(state *State, store sessionout.KeyValueStore, logger *slog.Logger) (cancel func()) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return state.Subscribe(func(session domain.Session) {
		ctx := context.Background()
		if !session.Authenticated() {
			if err := store.Delete(ctx, domain.TokenKey, domain.UserKey); err != nil {
				logger.Error("clear persisted session", "err", err)
			}
			return
		}
		rawUser, err := json.Marshal(session.User)
		if err != nil {
			logger.Error("encode persisted user", "err", err)
			return
		}
		if err := store.Set(ctx, domain.UserKey, string(rawUser)); err != nil {
			logger.Error("persist user", "err", err)
			return
		}
		if err := store.Set(ctx, domain.TokenKey, session.Token); err != nil {
			logger.Error("persist token", "err", err)
			_ = store.Delete(ctx, domain.UserKey)
		}
	})
}
