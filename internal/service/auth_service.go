package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sefazor/nearmeet-backend/internal/models"
	"github.com/sefazor/nearmeet-backend/internal/repository"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/sefazor/nearmeet-backend/pkg/bcrypt"
	"github.com/sefazor/nearmeet-backend/pkg/token"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserStore is the slice of the credential store the services need.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Save(user *models.User) error
	UpdateLastLogin(id uint, at time.Time) error
	FindNearby(lon, lat float64, excludeID uint, maxDistanceMeters float64, limit int) ([]models.User, error)
}

// Mailer sends account lifecycle emails. Delivery is best effort and never
// blocks or fails a registration.
type Mailer interface {
	SendVerificationEmail(email, firstName, verificationToken string) error
	SendWelcomeEmail(email, firstName string) error
}

type AuthService struct {
	users  UserStore
	mailer Mailer
	tokens *token.Manager
	logger *zap.Logger
}

func NewAuthService(users UserStore, mailer Mailer, tokens *token.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		mailer: mailer,
		tokens: tokens,
		logger: logger,
	}
}

// NormalizeEmail maps an email to its stored identity form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.RegisterResponse, error) {
	email := NormalizeEmail(req.Email)

	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("email already in use")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:      email,
		Password:   hashedPassword,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Age:        req.Age,
		Gender:     req.Gender,
		Bio:        req.Bio,
		IsActive:   true,
		IsVerified: false,
	}

	if err := s.users.Create(user); err != nil {
		// The unique index settles concurrent registrations; losing the race
		// looks the same as failing the upfront check.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, err
	}

	accessToken, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.sendRegistrationEmails(user)

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))

	return &models.RegisterResponse{
		User:        models.NewRegisteredUser(user),
		AccessToken: accessToken,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Unknown email and wrong password produce the same rejection.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("incorrect email or password")
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, apperror.Unauthorized("incorrect email or password")
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	accessToken, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID))

	return &models.LoginResponse{
		User:        models.NewLoggedInUser(user),
		AccessToken: accessToken,
	}, nil
}

// ValidateToken resolves verified token claims to the stored user record.
// Store failures other than a missing row propagate unmodified.
func (s *AuthService) ValidateToken(claims *token.Claims) (*models.User, error) {
	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("unauthorized user")
		}
		return nil, err
	}
	return user, nil
}

// VerifyEmail flips the verified flag for the address embedded in a
// verification token.
func (s *AuthService) VerifyEmail(verificationToken string) error {
	email, err := s.tokens.ValidateEmailVerification(verificationToken)
	if err != nil {
		return apperror.Unauthorized("invalid or expired token")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}
	if user.IsVerified {
		return apperror.Conflict("email already verified")
	}

	user.IsVerified = true
	return s.users.Save(user)
}

func (s *AuthService) sendRegistrationEmails(user *models.User) {
	if s.mailer == nil {
		return
	}

	verificationToken, err := s.tokens.GenerateEmailVerification(user.Email)
	if err != nil {
		s.logger.Warn("verification token generation failed", zap.Error(err))
		return
	}

	go func() {
		if err := s.mailer.SendVerificationEmail(user.Email, user.FirstName, verificationToken); err != nil {
			s.logger.Warn("verification email failed", zap.String("email", user.Email), zap.Error(err))
		}
		if err := s.mailer.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()
}
