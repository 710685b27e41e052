package services

import (
	"context"
	"errors"
	"time"

	"art-store/config"
	"art-store/models"
	"art-store/repositories"
	"art-store/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetTokenPrefix = "password_reset:"

type AuthService struct {
	userRepo *repositories.UserRepository
	email    *EmailService
}

// NewAuthService accepts a nil email service; password reset then still
// stores tokens but sends no mail, which only makes sense in development.
func NewAuthService(userRepo *repositories.UserRepository, email *EmailService) *AuthService {
	return &AuthService{userRepo: userRepo, email: email}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	if existing, _ := s.userRepo.FindByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Role:     "customer",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := s.userRepo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.loginResponse(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	return s.loginResponse(ctx, user)
}

func (s *AuthService) loginResponse(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	userWithProfile, err := s.userRepo.GetUserWithProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *userWithProfile}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.UserWithProfile, error) {
	return s.userRepo.GetUserWithProfile(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.UserWithProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		profile.FirstName = req.FirstName
	}
	if req.LastName != "" {
		profile.LastName = req.LastName
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserWithProfile(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := utils.VerifyPassword(user.Password, req.OldPassword)
	if err != nil || !valid {
		return ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}

// ForgotPassword always reports success for unknown emails so the endpoint
// cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if config.RedisClient == nil {
		return ErrResetUnavailable
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := config.RedisClient.Set(ctx, resetTokenPrefix+token, user.Email, time.Hour).Err(); err != nil {
		return err
	}

	if s.email != nil {
		return s.email.SendPasswordResetEmail(user.Email, token)
	}
	return nil
}

// ResetPassword consumes the token atomically (GETDEL), so a token can
// never be used twice.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if config.RedisClient == nil {
		return ErrResetUnavailable
	}

	email, err := config.RedisClient.GetDel(ctx, resetTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword)
}
