package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sefazor/nearmeet-backend/internal/models"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/sefazor/nearmeet-backend/pkg/geo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultMaxDistanceMeters is the search radius applied when no internal
	// override is supplied (50 km). Not caller-configurable over HTTP.
	DefaultMaxDistanceMeters = 50000.0
	// MaxNearbyResults caps a proximity query result.
	MaxNearbyResults = 100
)

// PhotoStorage stores profile photo objects and exposes their public URLs.
type PhotoStorage interface {
	Upload(key string, src io.Reader) error
	PublicURL(key string) string
}

type UserService struct {
	users  UserStore
	photos PhotoStorage
	logger *zap.Logger
}

func NewUserService(users UserStore, photos PhotoStorage, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		photos: photos,
		logger: logger,
	}
}

func (s *UserService) GetProfile(userID uint) (*models.UserProfile, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	profile := models.NewUserProfile(user)
	return &profile, nil
}

// UpdateProfile applies a partial update to the stored record. Coordinates
// replace the location point and are handled before the scalar merge; the
// result is persisted as a single write.
func (s *UserService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Coordinates != nil {
		if err := geo.ValidateCoordinates(req.Coordinates); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		user.Longitude = req.Coordinates[0]
		user.Latitude = req.Coordinates[1]
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	profile := models.NewUserProfile(user)
	return &profile, nil
}

// FindNearbyUsers returns active users around the requester's stored location,
// nearest first, excluding the requester, capped at MaxNearbyResults.
// maxDistanceMeters <= 0 selects the default radius.
func (s *UserService) FindNearbyUsers(userID uint, maxDistanceMeters float64) ([]models.UserProfile, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultMaxDistanceMeters
	}

	nearby, err := s.users.FindNearby(user.Longitude, user.Latitude, user.ID, maxDistanceMeters, MaxNearbyResults)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(nearby))
	for i := range nearby {
		profiles = append(profiles, models.NewUserProfile(&nearby[i]))
	}
	return profiles, nil
}

// AddPhoto uploads a photo object and appends its public URL to the user's
// ordered photo list.
func (s *UserService) AddPhoto(userID uint, filename string, src io.Reader) (*models.UserProfile, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("photos/%d/%s%s", user.ID, uuid.NewString(), filepath.Ext(filename))
	if err := s.photos.Upload(key, src); err != nil {
		return nil, err
	}

	user.Photos = append(user.Photos, s.photos.PublicURL(key))
	if err := s.users.Save(user); err != nil {
		return nil, err
	}

	s.logger.Info("profile photo added", zap.Uint("user_id", user.ID), zap.String("key", key))

	profile := models.NewUserProfile(user)
	return &profile, nil
}

func (s *UserService) getUser(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
