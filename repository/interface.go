package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ashish4bollam/Anveshak/models"
)

// CameraRepo defines the operations used against the "cameras" collection.
// The interface uses plain Go types (no mongo-driver types) so the services
// can be tested with in-memory stubs.
type CameraRepo interface {
	Create(ctx context.Context, camera *models.Camera) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Camera, error)
	Find(ctx context.Context, filters models.CameraFilters) ([]models.Camera, error)
	FindAll(ctx context.Context) ([]models.Camera, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByDeviceAndLocation reports whether any camera matches the
	// (deviceName, latitude, longitude) triple by exact string equality.
	ExistsByDeviceAndLocation(ctx context.Context, deviceName, latitude, longitude string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByCondition(ctx context.Context, condition string) (int64, error)
}

// UserRepo defines the operations used against the "users" collection.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}
