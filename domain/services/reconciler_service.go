package services

import "context"

// ReconcilerService re-runs the project save pipeline over every project.
type ReconcilerService interface {
	ReconcileAll(ctx context.Context) (int, error)
	Start() error
}
