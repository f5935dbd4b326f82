package service

import (
	"io"
	"strings"
	"testing"

	"github.com/sefazor/nearmeet-backend/internal/models"
	"github.com/sefazor/nearmeet-backend/pkg/apperror"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockPhotoStorage struct {
	uploadedKey string
	uploaded    string
}

func (m *mockPhotoStorage) Upload(key string, src io.Reader) error {
	m.uploadedKey = key
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	m.uploaded = string(data)
	return nil
}

func (m *mockPhotoStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func newTestUserService(store UserStore, photos PhotoStorage) *UserService {
	return NewUserService(store, photos, zap.NewNop())
}

func profileFixture() *models.User {
	return &models.User{
		ID:        7,
		Email:     "a@x.com",
		Password:  "$2a$10$irrelevant",
		FirstName: "A",
		LastName:  "B",
		Age:       30,
		Gender:    "male",
		IsActive:  true,
	}
}

func storeWithUser(user *models.User) *mockUserStore {
	return &mockUserStore{
		getByIDFn: func(id uint) (*models.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestGetProfile(t *testing.T) {
	user := profileFixture()
	svc := newTestUserService(storeWithUser(user), nil)

	profile, err := svc.GetProfile(7)
	require.NoError(t, err)
	require.Equal(t, uint(7), profile.ID)
	require.Equal(t, models.Location{Type: "Point", Coordinates: []float64{0, 0}}, profile.Location)
	require.NotNil(t, profile.Photos)

	_, err = svc.GetProfile(99)
	requireAppError(t, err, 404, "user not found")
}

func TestUpdateProfile_CoordinatesOnly(t *testing.T) {
	user := profileFixture()
	store := storeWithUser(user)
	var saved *models.User
	store.saveFn = func(u *models.User) error {
		saved = u
		return nil
	}
	svc := newTestUserService(store, nil)

	profile, err := svc.UpdateProfile(7, models.UpdateProfileRequest{
		Coordinates: []float64{2.3488, 48.8534},
	})
	require.NoError(t, err)

	// Location replaced, everything else untouched, one write.
	require.NotNil(t, saved)
	require.Equal(t, 2.3488, saved.Longitude)
	require.Equal(t, 48.8534, saved.Latitude)
	require.Equal(t, "A", saved.FirstName)
	require.Equal(t, 30, saved.Age)
	require.Equal(t, models.Location{Type: "Point", Coordinates: []float64{2.3488, 48.8534}}, profile.Location)
}

func TestUpdateProfile_ScalarMerge(t *testing.T) {
	user := profileFixture()
	store := storeWithUser(user)
	saves := 0
	store.saveFn = func(u *models.User) error {
		saves++
		return nil
	}
	svc := newTestUserService(store, nil)

	firstName := "  Alice "
	bio := "bonjour"
	profile, err := svc.UpdateProfile(7, models.UpdateProfileRequest{
		FirstName:   &firstName,
		Bio:         &bio,
		Coordinates: []float64{2.3488, 48.8534},
	})
	require.NoError(t, err)
	require.Equal(t, 1, saves)
	require.Equal(t, "Alice", profile.FirstName)
	require.Equal(t, "bonjour", profile.Bio)
	require.Equal(t, "B", profile.LastName)
	require.Equal(t, []float64{2.3488, 48.8534}, profile.Location.Coordinates)
}

func TestUpdateProfile_InvalidCoordinates(t *testing.T) {
	user := profileFixture()
	store := storeWithUser(user)
	store.saveFn = func(u *models.User) error {
		t.Fatal("Save must not be called for invalid coordinates")
		return nil
	}
	svc := newTestUserService(store, nil)

	_, err := svc.UpdateProfile(7, models.UpdateProfileRequest{
		Coordinates: []float64{200, 0},
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Code)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc := newTestUserService(&mockUserStore{}, nil)

	_, err := svc.UpdateProfile(7, models.UpdateProfileRequest{})
	requireAppError(t, err, 404, "user not found")
}

func TestFindNearbyUsers_QueryShape(t *testing.T) {
	user := profileFixture()
	user.Longitude = 2.3488
	user.Latitude = 48.8534
	store := storeWithUser(user)

	var gotLon, gotLat, gotMax float64
	var gotExclude uint
	var gotLimit int
	store.findNearbyFn = func(lon, lat float64, excludeID uint, maxDistanceMeters float64, limit int) ([]models.User, error) {
		gotLon, gotLat, gotExclude, gotMax, gotLimit = lon, lat, excludeID, maxDistanceMeters, limit
		return []models.User{{ID: 8, Email: "b@x.com", IsActive: true}}, nil
	}
	svc := newTestUserService(store, nil)

	profiles, err := svc.FindNearbyUsers(7, 0)
	require.NoError(t, err)

	// Search is centered on the requester, excludes them, and applies the
	// policy constants.
	require.Equal(t, 2.3488, gotLon)
	require.Equal(t, 48.8534, gotLat)
	require.Equal(t, uint(7), gotExclude)
	require.Equal(t, float64(DefaultMaxDistanceMeters), gotMax)
	require.Equal(t, MaxNearbyResults, gotLimit)

	require.Len(t, profiles, 1)
	require.Equal(t, uint(8), profiles[0].ID)
	for _, p := range profiles {
		require.NotEqual(t, uint(7), p.ID)
	}
}

func TestFindNearbyUsers_InternalOverride(t *testing.T) {
	user := profileFixture()
	store := storeWithUser(user)

	var gotMax float64
	store.findNearbyFn = func(lon, lat float64, excludeID uint, maxDistanceMeters float64, limit int) ([]models.User, error) {
		gotMax = maxDistanceMeters
		return nil, nil
	}
	svc := newTestUserService(store, nil)

	_, err := svc.FindNearbyUsers(7, 1000)
	require.NoError(t, err)
	require.Equal(t, float64(1000), gotMax)
}

func TestAddPhoto(t *testing.T) {
	user := profileFixture()
	store := storeWithUser(user)
	var saved *models.User
	store.saveFn = func(u *models.User) error {
		saved = u
		return nil
	}
	photos := &mockPhotoStorage{}
	svc := newTestUserService(store, photos)

	profile, err := svc.AddPhoto(7, "selfie.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(photos.uploadedKey, "photos/7/"))
	require.True(t, strings.HasSuffix(photos.uploadedKey, ".jpg"))
	require.Equal(t, "jpegbytes", photos.uploaded)

	require.NotNil(t, saved)
	require.Len(t, profile.Photos, 1)
	require.Equal(t, "https://cdn.example.com/"+photos.uploadedKey, profile.Photos[0])
}
