package staffRepo

import (
	"tillpoint/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StaffRepository defines persistence operations for staff members.
type StaffRepository interface {
	Create(staff *models.Staff) error
	Update(staff *models.Staff) error
	Delete(id string) error
	GetByIDWithProjection(id string, projection bson.M) (*models.Staff, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.Staff, error)
	GetByTokenHash(tokenHash string) (*models.Staff, error)
	GetAll() ([]models.Staff, error)
	UpdateSetDocument(id string, updateDoc bson.M) error
}
