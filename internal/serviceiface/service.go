package serviceiface

// Service is one independently started part of the app (HTTP area, logger,
// cron). The app manager starts them in services.yaml order and stops them
// in reverse.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
