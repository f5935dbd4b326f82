package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sefazor/nearmeet-backend/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateEmail reports that the unique index on users.email rejected an
// insert. Two concurrent registrations can both pass the existence check; the
// index is what actually settles the race.
var ErrDuplicateEmail = errors.New("duplicate email")

const uniqueViolationCode = "23505"

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// nearbySQL computes the haversine distance in meters between each active
// user and the reference point, then filters and orders on it. The requester
// is excluded by id.
const nearbySQL = `
SELECT * FROM (
	SELECT *,
		2 * 6371000 * asin(sqrt(
			power(sin(radians(latitude - @lat) / 2), 2) +
			cos(radians(@lat)) * cos(radians(latitude)) *
			power(sin(radians(longitude - @lon) / 2), 2)
		)) AS distance
	FROM users
	WHERE is_active = TRUE AND id <> @id
) AS candidates
WHERE distance <= @max_distance
ORDER BY distance
LIMIT @max_results`

// FindNearby returns active users other than excludeID within
// maxDistanceMeters of (lon, lat), nearest first, capped at limit.
func (r *UserRepository) FindNearby(lon, lat float64, excludeID uint, maxDistanceMeters float64, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Raw(nearbySQL, map[string]interface{}{
		"lon":          lon,
		"lat":          lat,
		"id":           excludeID,
		"max_distance": maxDistanceMeters,
		"max_results":  limit,
	}).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
