package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shivamkr-03/plantGuardAI/models"
	"github.com/shivamkr-03/plantGuardAI/utils"
)

type AuthenticationService interface {
	SignUp(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type authenticationService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthenticationService(db *gorm.DB, secret []byte) AuthenticationService {
	return &authenticationService{db: db, secret: secret}
}

func (s *authenticationService) SignUp(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(s.secret, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user, AccessToken: token}, nil
}

func (s *authenticationService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.secret, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user, AccessToken: token}, nil
}
