package inbound

import (
	"context"

	"highlight-reel-pipeline/domain"
)

type CallbackRouterPort interface {
	Route(ctx context.Context, notification domain.StorageNotification) error
}
