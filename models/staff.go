package models

import "time"

// Staff represents one member of the restaurant staff with a dashboard role.
type Staff struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash" json:"-"`
	FCMToken     string    `bson:"fcmToken" json:"-"`
	ProfileImage string    `bson:"profileImage" json:"profileImage,omitempty"`
	Active       bool      `bson:"active" json:"active"`
	LastLogin    time.Time `bson:"lastLogin" json:"lastLogin"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StaffUpdateRequest carries the fields a staff member may change on their profile.
type StaffUpdateRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}
