package domain

import (
	"fmt"
	"strings"
)

// StorageLocation addresses one object as scheme://bucket/key.
type StorageLocation struct {
	Scheme string
	Bucket string
	Key    string
}

func ParseLocation(raw string) (StorageLocation, error) {
	schemeEnd := strings.Index(raw, "://")
	if schemeEnd <= 0 {
		return StorageLocation{}, fmt.Errorf("%w: %q", ErrInvalidLocation, raw)
	}

	rest := raw[schemeEnd+3:]
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return StorageLocation{}, fmt.Errorf("%w: %q", ErrInvalidLocation, raw)
	}

	return StorageLocation{
		Scheme: raw[:schemeEnd],
		Bucket: rest[:slash],
		Key:    rest[slash+1:],
	}, nil
}

func BuildLocation(scheme string, bucket string, key string) string {
	return scheme + "://" + bucket + "/" + key
}

func (l StorageLocation) String() string {
	return BuildLocation(l.Scheme, l.Bucket, l.Key)
}
