package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Funda-work-inc/smdl-simple-app/internal/audit"
	"github.com/Funda-work-inc/smdl-simple-app/internal/handlers/admin"
	"github.com/Funda-work-inc/smdl-simple-app/internal/handlers/v1/status"
	apitransaction "github.com/Funda-work-inc/smdl-simple-app/internal/handlers/v1/transaction"
	"github.com/Funda-work-inc/smdl-simple-app/internal/handlers/web"
	"github.com/Funda-work-inc/smdl-simple-app/internal/logging"
	"github.com/Funda-work-inc/smdl-simple-app/internal/metrics"
	"github.com/Funda-work-inc/smdl-simple-app/internal/operator"
	"github.com/Funda-work-inc/smdl-simple-app/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
	Audit    *audit.Recorder
}

func (r *Rest) Serve() {
	router := r.Router()

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           router,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// Router builds the full route table: status and metrics, the audited
// JSON write API, the user-facing form, and the admin screens.
func (r *Rest) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(metrics.Middleware())

	wrap := func(name string, handler func(http.ResponseWriter, *http.Request, *logging.LogData) error) http.HandlerFunc {
		return logging.LoggingWrapper(name, r.Logger, handler)
	}

	statusHandler := status.NewHandler()
	router.HandleFunc("/status", wrap("Status", statusHandler.Handler)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	createHandler := apitransaction.NewCreateTransactionHandler(r.Operator, r.Audit)
	updateHandler := apitransaction.NewUpdateTransactionHandler(r.Service.Transaction, r.Operator, r.Audit)
	router.HandleFunc("/api/v1/simple_transactions", wrap("ApiCreateTransaction", createHandler.Handler)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/simple_transactions/{id}", wrap("ApiUpdateTransaction", updateHandler.Handler)).Methods(http.MethodPut)

	webHandler := web.NewHandler(r.Service.Transaction, r.Operator)
	router.HandleFunc("/simple_transactions/new", wrap("WebNewTransaction", webHandler.New)).Methods(http.MethodGet)
	router.HandleFunc("/simple_transactions", wrap("WebCreateTransaction", webHandler.Create)).Methods(http.MethodPost)
	router.HandleFunc("/simple_transactions/{id}", wrap("WebShowTransaction", webHandler.Show)).Methods(http.MethodGet)

	adminTransactions := admin.NewTransactionsHandler(r.Service.Transaction, r.Operator)
	router.HandleFunc("/admin/simple_transactions", wrap("AdminListTransactions", adminTransactions.List)).Methods(http.MethodGet)
	router.HandleFunc("/admin/simple_transactions/{id}", wrap("AdminShowTransaction", adminTransactions.Show)).Methods(http.MethodGet)
	router.HandleFunc("/admin/simple_transactions/{id}", wrap("AdminUpdateTransaction", adminTransactions.Update)).Methods(http.MethodPatch, http.MethodPut)
	router.HandleFunc("/admin/simple_transactions/{id}/cancel", wrap("AdminCancelTransaction", adminTransactions.Cancel)).Methods(http.MethodPatch)
	router.HandleFunc("/admin/simple_transactions/{id}", wrap("AdminDestroyTransaction", adminTransactions.Destroy)).Methods(http.MethodDelete)

	adminLogs := admin.NewApiCallLogsHandler(r.Service.ApiCallLog)
	router.HandleFunc("/admin/api_call_logs", wrap("AdminListApiCallLogs", adminLogs.List)).Methods(http.MethodGet)
	router.HandleFunc("/admin/api_call_logs/{id}", wrap("AdminShowApiCallLog", adminLogs.Show)).Methods(http.MethodGet)

	return router
}
