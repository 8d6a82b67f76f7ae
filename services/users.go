package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shivamkr-03/plantGuardAI/models"
)

type ProfileService interface {
	Get(ctx context.Context, userID uint) (*models.User, error)
	Update(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.User, error)
}

type profileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) ProfileService {
	return &profileService{db: db}
}

func (s *profileService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies only the fields present in the request body; absent keys
// leave the stored values untouched.
func (s *profileService) Update(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = req.Name
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
