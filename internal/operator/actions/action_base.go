package actions

import (
	"context"

	"github.com/carson-networks/fraud-detection-server/internal/storage"
)

type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}
