package query

import (
	"context"

	"gitlab.com/onboardly/accounts-backend/pkg/ctxs"
	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
)

// ProfileHandler serves the account of whoever the request token belongs to.
type ProfileHandler struct {
	get *GetHandler
}

func NewProfileHandler(get *GetHandler) *ProfileHandler {
	return &ProfileHandler{get: get}
}

func (h *ProfileHandler) Handle(ctx context.Context) (AccountView, error) {
	user, ok := ctxs.UserFromCtx(ctx)
	if !ok || user == nil || user.ID == "" {
		return AccountView{}, errorx.NewUnauthorized()
	}
	return h.get.ByUserID(ctx, user.ID)
}
