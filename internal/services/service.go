package services

import (
	"globeswap/config"
	"globeswap/internal/database"
)

type Service struct {
	Transaction *TransactionService
	Auth        *AuthService
}

func New(db database.DB, config config.Config) Service {
	return Service{
		Transaction: NewTransactionService(db),
		Auth:        NewAuthService(config, db.Cache.Session),
	}
}
