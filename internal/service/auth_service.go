package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gymtrack/gym-app/internal/domain"
	"gymtrack/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrEmailAlreadyRegistered = errors.New("user with this email already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrTrainerNotFound        = errors.New("trainer not found")
	ErrHashingFailed          = errors.New("failed to hash password")
	ErrTokenGeneration        = errors.New("failed to generate authentication token")
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// AuthService handles registration, login and the current-user lookup.
//
// There is no persisted session snapshot: tokens carry only the user ID and
// CurrentUser always re-fetches the live record, so profile mutations are
// visible immediately after they happen.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role, trainerID string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	revoker       TokenRevoker
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, revoker TokenRevoker, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		userRepo:      userRepo,
		revoker:       revoker,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. A trainee may optionally be linked
// to a trainer at registration time via trainerID.
func (s *authService) Register(ctx context.Context, name, email, password string, role domain.Role, trainerID string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}
	if len(password) < MinPasswordLength {
		return nil, errors.New("password is too short")
	}
	if role != domain.RoleTrainer && role != domain.RoleTrainee {
		return nil, errors.New("role must be trainer or trainee")
	}
	if trainerID != "" && role != domain.RoleTrainee {
		return nil, errors.New("only trainees can be linked to a trainer")
	}

	// A trainer reference must point at an actual trainer.
	if trainerID != "" {
		if _, err := s.userRepo.GetTrainerByID(ctx, trainerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTrainerNotFound
			}
			return nil, err
		}
	}

	// Check if the email is already taken.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		TrainerID:    trainerID,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// The repository re-checks uniqueness inside its write lock.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Login authenticates a user and issues a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	sanitized := user.Sanitized()
	return token, &sanitized, nil
}

// CurrentUser re-fetches the live user record. The password hash is stripped
// before the record leaves the service.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Logout revokes the presented token until its natural expiry. The users
// collection is not touched.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.revoker.Revoke(ctx, tokenID, time.Until(expiresAt))
}

// --- JWT Helper ---

// Claims defines the structure of the JWT payload.
type Claims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user. Each token carries
// a unique ID so logout can revoke it individually.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gym-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
