package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Seeder      SeederSvc
	Reporting   ReportingService
	Health      HealthSvc
}

// ProgressObserver receives batch-level progress of long running jobs.
// Calls arrive from one goroutine at a time.
type ProgressObserver interface {
	BatchCompleted(processed, total int)
}

// ProgressFunc adapts a plain function to ProgressObserver.
type ProgressFunc func(processed, total int)

func (f ProgressFunc) BatchCompleted(processed, total int) {
	f(processed, total)
}
