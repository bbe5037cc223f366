package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/Funda-work-inc/smdl-simple-app/internal/config"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/apicalllog"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage/transaction"
)

// Storage is the persistence boundary. Tables are read directly off
// Storage; mutations of a transaction and its items go through Write,
// which scopes them to a single database transaction.
type Storage struct {
	DB           *sql.DB
	Transactions transaction.ITransactionTable
	ApiCallLogs  apicalllog.IApiCallLogTable
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	return &Storage{
		DB:           db,
		Transactions: transaction.NewTransactionsTable(db),
		ApiCallLogs:  apicalllog.NewApiCallLogsTable(db),
	}
}

// Write opens a database transaction and returns a Writer scoped to it.
// The caller owns the Writer for the duration of one aggregate operation
// and must Commit or Rollback on every exit path.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}
