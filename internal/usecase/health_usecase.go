package usecase

import "context"

// HealthUsecase is a pure liveness probe; it deliberately never touches
// the store so a database outage cannot fail it.
type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	serviceName string
}

func NewHealthUsecase(serviceName string) HealthUsecase {
	return &healthUsecase{serviceName: serviceName}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status":  "healthy",
		"service": u.serviceName,
	}
}
