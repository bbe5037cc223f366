package actions

import (
	"context"

	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
