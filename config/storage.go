package config

import (
	"fmt"
	"os"
)

type StorageConfig struct {
	BucketName string
	Region     string
}

func GetStorageConfig() (*StorageConfig, error) {
	bucketName := os.Getenv("BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("BUCKET_NAME must be set")
	}

	region := os.Getenv("REGION")
	if region == "" {
		return nil, fmt.Errorf("REGION must be set")
	}

	return &StorageConfig{
		BucketName: bucketName,
		Region:     region,
	}, nil
}
