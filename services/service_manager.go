package services

import (
	"gorm.io/gorm"

	"github.com/shivamkr-03/plantGuardAI/inference"
)

// ServiceManager holds all services with their shared dependencies.
type ServiceManager struct {
	Authentication AuthenticationService
	Profile        ProfileService
	History        HistoryService
	Predict        PredictService
}

func NewServiceManager(db *gorm.DB, secret []byte, model Classifier, pre *inference.Preprocessor, resolver *inference.Resolver) *ServiceManager {
	history := NewHistoryService(db)
	return &ServiceManager{
		Authentication: NewAuthenticationService(db, secret),
		Profile:        NewProfileService(db),
		History:        history,
		Predict:        NewPredictService(model, pre, resolver, history),
	}
}
