package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wordbank-backend/internal/middleware"
	"wordbank-backend/internal/models"
)

const accessTokenTTLSeconds = 15 * 60

// AuthService authenticates the single configured learner and issues access
// tokens. Account management beyond that is not this system's concern.
type AuthService struct {
	jwt          *middleware.JWTAuth
	email        string
	passwordHash string
	userID       uuid.UUID
}

func NewAuthService(jwt *middleware.JWTAuth, email, passwordHash string) *AuthService {
	return &AuthService{
		jwt:          jwt,
		email:        email,
		passwordHash: passwordHash,
		// Stable id derived from the configured email so websocket
		// registrations survive restarts.
		userID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(email))),
	}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	fieldErrors := make(map[string]string)
	if req.Email == "" {
		fieldErrors["email"] = "Email is required"
	}
	if req.Password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if !strings.EqualFold(req.Email, s.email) {
		return nil, &UnauthorizedError{Message: "Invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Invalid credentials"}
	}

	token, err := s.jwt.GenerateAccessToken(s.userID, s.email)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   accessTokenTTLSeconds,
	}, nil
}
