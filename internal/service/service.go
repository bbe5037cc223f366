package service

import (
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	ApiCallLog  *ApiCallLogService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Transaction: NewTransactionService(store),
		ApiCallLog:  NewApiCallLogService(store),
	}
}
