package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkingCondition is the operational status recorded for a camera.
type WorkingCondition string

const (
	ConditionWorking    WorkingCondition = "Working"
	ConditionNotWorking WorkingCondition = "Not Working"
)

// Camera represents a registered CCTV camera stored in the "cameras" collection.
// Latitude and longitude are kept as strings exactly as submitted; duplicate
// detection relies on string equality, not numeric comparison.
type Camera struct {
	ID               uuid.UUID `bson:"_id" json:"id"`
	OwnerName        string    `bson:"ownerName" json:"ownerName"`
	PhoneNumber      string    `bson:"phoneNumber" json:"phoneNumber"`
	DeviceName       string    `bson:"deviceName" json:"deviceName"`
	DeviceType       string    `bson:"deviceType" json:"deviceType"`
	Latitude         string    `bson:"latitude" json:"latitude"`
	Longitude        string    `bson:"longitude" json:"longitude"`
	Address          string    `bson:"address" json:"address"`
	City             string    `bson:"city" json:"city"`
	Organization     string    `bson:"organization" json:"organization"`
	WorkingCondition string    `bson:"workingCondition" json:"workingCondition"`
	Username         string    `bson:"username" json:"username"`
	PoliceID         string    `bson:"policeId" json:"policeId"`
	DateChecked      string    `bson:"dateChecked" json:"dateChecked"` // YYYY-MM-DD
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// CreateCameraRequest is the payload for registering a single camera.
type CreateCameraRequest struct {
	OwnerName        string `json:"ownerName" binding:"required"`
	PhoneNumber      string `json:"phoneNumber" binding:"required"`
	DeviceName       string `json:"deviceName" binding:"required"`
	DeviceType       string `json:"deviceType" binding:"required"`
	Latitude         string `json:"latitude" binding:"required"`
	Longitude        string `json:"longitude" binding:"required"`
	Address          string `json:"address" binding:"required"`
	City             string `json:"city" binding:"required"`
	Organization     string `json:"organization" binding:"required"`
	WorkingCondition string `json:"workingCondition" binding:"required,oneof='Working' 'Not Working'"`
	DateChecked      string `json:"dateChecked" binding:"omitempty,isodate"`
}

// UpdateCameraRequest is the payload for editing a camera from the
// "my cameras" screen. All fields optional; blank means unchanged.
type UpdateCameraRequest struct {
	OwnerName        string `json:"ownerName"`
	PhoneNumber      string `json:"phoneNumber"`
	DeviceName       string `json:"deviceName"`
	DeviceType       string `json:"deviceType"`
	Address          string `json:"address"`
	City             string `json:"city"`
	Organization     string `json:"organization"`
	WorkingCondition string `json:"workingCondition"`
	DateChecked      string `json:"dateChecked" binding:"omitempty,isodate"`
}

// CameraFilters holds the equality filters supported by the camera list.
type CameraFilters struct {
	Username         string
	City             string
	Organization     string
	WorkingCondition string
	DeviceType       string
	DateChecked      string
}

// DashboardStats summarizes the registry for the dashboard screen.
type DashboardStats struct {
	TotalCameras   int64 `json:"total_cameras"`
	WorkingCameras int64 `json:"working_cameras"`
}
