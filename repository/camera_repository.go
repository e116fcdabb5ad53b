package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ashish4bollam/Anveshak/models"
)

// CameraRepository implements CameraRepo on top of the "cameras" collection.
type CameraRepository struct {
	collection *mongo.Collection
}

func NewCameraRepository(db *mongo.Database) *CameraRepository {
	return &CameraRepository{
		collection: db.Collection("cameras"),
	}
}

func (r *CameraRepository) Create(ctx context.Context, camera *models.Camera) error {
	if camera.ID == uuid.Nil {
		camera.ID = uuid.New()
	}
	now := time.Now().UTC()
	if camera.CreatedAt.IsZero() {
		camera.CreatedAt = now
	}
	camera.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, camera)
	return err
}

func (r *CameraRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Camera, error) {
	var camera models.Camera
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&camera)
	if err != nil {
		return nil, err
	}
	return &camera, nil
}

func (r *CameraRepository) Find(ctx context.Context, filters models.CameraFilters) ([]models.Camera, error) {
	filter := bson.M{}
	if filters.Username != "" {
		filter["username"] = filters.Username
	}
	if filters.City != "" {
		filter["city"] = filters.City
	}
	if filters.Organization != "" {
		filter["organization"] = filters.Organization
	}
	if filters.WorkingCondition != "" {
		filter["workingCondition"] = filters.WorkingCondition
	}
	if filters.DeviceType != "" {
		filter["deviceType"] = filters.DeviceType
	}
	if filters.DateChecked != "" {
		filter["dateChecked"] = filters.DateChecked
	}
	return r.findWithFilter(ctx, filter)
}

func (r *CameraRepository) FindAll(ctx context.Context) ([]models.Camera, error) {
	return r.findWithFilter(ctx, bson.M{})
}

func (r *CameraRepository) findWithFilter(ctx context.Context, filter bson.M) ([]models.Camera, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cameras []models.Camera
	if err := cursor.All(ctx, &cameras); err != nil {
		return nil, err
	}
	return cameras, nil
}

func (r *CameraRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *CameraRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ExistsByDeviceAndLocation does an equality match on the duplicate-key
// triple. Values are compared exactly as stored; no normalization.
func (r *CameraRepository) ExistsByDeviceAndLocation(ctx context.Context, deviceName, latitude, longitude string) (bool, error) {
	filter := bson.M{
		"deviceName": deviceName,
		"latitude":   latitude,
		"longitude":  longitude,
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CameraRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *CameraRepository) CountByCondition(ctx context.Context, condition string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"workingCondition": condition})
}
