package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User is the stored credential and profile record. The email is the identity
// key and is always persisted lowercase/trimmed; the password column holds a
// bcrypt hash and never leaves the process through a projection.
type User struct {
	ID         uint           `gorm:"primaryKey"`
	Email      string         `gorm:"uniqueIndex;not null"`
	Password   string         `gorm:"not null"`
	FirstName  string         `gorm:"not null"`
	LastName   string         `gorm:"not null"`
	Age        int            `gorm:"not null"`
	Gender     string         `gorm:"not null"`
	Bio        string         `gorm:"size:500"`
	Photos     pq.StringArray `gorm:"type:text[]"`
	Longitude  float64        `gorm:"not null;default:0"`
	Latitude   float64        `gorm:"not null;default:0"`
	IsActive   bool           `gorm:"not null;default:true"`
	IsVerified bool           `gorm:"not null;default:false"`
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Location is the external GeoJSON-style form of the stored point.
type Location struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func (u *User) Location() Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{u.Longitude, u.Latitude},
	}
}

// RegisteredUser is the narrow projection returned by registration.
type RegisteredUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// LoggedInUser adds bio and photos: the caller just authenticated as this
// user, so the richer self view is appropriate.
type LoggedInUser struct {
	ID        uint     `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Bio       string   `json:"bio"`
	Photos    []string `json:"photos"`
}

// UserProfile is the full public projection: everything stored except the
// password hash.
type UserProfile struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Age        int        `json:"age"`
	Gender     string     `json:"gender"`
	Bio        string     `json:"bio"`
	Photos     []string   `json:"photos"`
	Location   Location   `json:"location"`
	IsActive   bool       `json:"isActive"`
	IsVerified bool       `json:"isVerified"`
	LastLogin  *time.Time `json:"lastLogin"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func NewRegisteredUser(u *User) RegisteredUser {
	return RegisteredUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Gender:    u.Gender,
	}
}

func NewLoggedInUser(u *User) LoggedInUser {
	return LoggedInUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Gender:    u.Gender,
		Bio:       u.Bio,
		Photos:    photosOrEmpty(u.Photos),
	}
}

func NewUserProfile(u *User) UserProfile {
	return UserProfile{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Age:        u.Age,
		Gender:     u.Gender,
		Bio:        u.Bio,
		Photos:     photosOrEmpty(u.Photos),
		Location:   u.Location(),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// photosOrEmpty keeps the JSON form a [] instead of null.
func photosOrEmpty(photos pq.StringArray) []string {
	if photos == nil {
		return []string{}
	}
	return photos
}
