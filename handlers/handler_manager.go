package handlers

import "github.com/shivamkr-03/plantGuardAI/services"

type HandlerManager struct {
	AuthenticationHandler *AuthenticationHandler
	ProfileHandler        *ProfileHandler
	HistoryHandler        *HistoryHandler
	PredictHandler        *PredictHandler
}

func NewHandlerManager(sm *services.ServiceManager) *HandlerManager {
	return &HandlerManager{
		AuthenticationHandler: NewAuthenticationHandler(sm.Authentication),
		ProfileHandler:        NewProfileHandler(sm.Profile),
		HistoryHandler:        NewHistoryHandler(sm.History),
		PredictHandler:        NewPredictHandler(sm.Predict),
	}
}
