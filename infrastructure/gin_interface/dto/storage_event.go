package dto

// StorageEventRequest mirrors the storage write notification shape delivered
// by the event bus.
type StorageEventRequest struct {
	Source     string             `json:"source"`
	DetailType string             `json:"detail-type"`
	Detail     StorageEventDetail `json:"detail" binding:"required"`
}

type StorageEventDetail struct {
	Bucket StorageEventBucket `json:"bucket" binding:"required"`
	Object StorageEventObject `json:"object" binding:"required"`
}

type StorageEventBucket struct {
	Name string `json:"name" binding:"required"`
}

type StorageEventObject struct {
	Key string `json:"key" binding:"required"`
}
