package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/repository"
)

const tokenTTL = 24 * time.Hour

// AuthService handles signup, login and profile management for the
// police-personnel accounts in the "users" collection.
type AuthService struct {
	users     repository.UserRepo
	jwtSecret []byte
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepo, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret), logger: logger}
}

// Signup creates a new account with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, *ServiceError) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, &ServiceError{StatusCode: 409, Message: "Email already registered"}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Error("Signup lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, &ServiceError{StatusCode: 409, Message: "Username already taken"}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Error("Signup lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Password hash failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		PoliceID: req.PoliceID,
		Password: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create account"}
	}

	s.logger.Info("User registered", zap.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and issues an HS256 token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
		}
		s.logger.Error("Login lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Login failed"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("Token generation failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Login failed"}
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}

// GetProfile loads the caller's profile.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Profile lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load profile"}
	}
	return user, nil
}

// UpdateProfile applies a partial edit to the caller's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) *ServiceError {
	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.PoliceID != "" {
		updates["policeId"] = req.PoliceID
	}
	if len(updates) == 0 {
		return &ServiceError{StatusCode: 400, Message: "No fields to update"}
	}

	if err := s.users.Update(ctx, userID, updates); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Profile update failed", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update profile"}
	}
	return nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"policeId": user.PoliceID,
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
