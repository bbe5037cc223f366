package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Funda-work-inc/smdl-simple-app/api"
	"github.com/Funda-work-inc/smdl-simple-app/internal/audit"
	"github.com/Funda-work-inc/smdl-simple-app/internal/config"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
	"github.com/Funda-work-inc/smdl-simple-app/internal/storage"
)

const numOperatorWorkers = 4

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("smdl-simple-app starting")

	dbStorage := storage.NewStorage(envConfig)
	svc := service.NewService(dbStorage)

	delegator := operator.NewOperatorDelegator(dbStorage, numOperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	recorder := audit.NewRecorder(dbStorage.ApiCallLogs, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Operator: delegator,
			Audit:    recorder,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
