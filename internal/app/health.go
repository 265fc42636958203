package app

import (
	"context"

	"github.com/turtacn/InfringeCheck/internal/infrastructure/storage/minio"
)

// minioHealthAdapter exposes the object source to the readiness probe.
type minioHealthAdapter struct {
	src *minio.ObjectSource
}

func (a *minioHealthAdapter) Name() string {
	return "minio"
}

func (a *minioHealthAdapter) Check(ctx context.Context) error {
	return a.src.Check(ctx)
}

//Personal.AI order the ending
