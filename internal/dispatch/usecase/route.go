package usecase

import "dispatch-bot/internal/dispatch"

// resolve maps a top intent identifier onto its route.
func (uc *implUseCase) resolve(intent string) dispatch.Route {
	if r, ok := uc.structured[intent]; ok {
		return r
	}
	if b, ok := uc.bindings.Lookup(intent); ok {
		return dispatch.QnARoute{Binding: b}
	}
	return dispatch.UnknownRoute{Intent: intent}
}
