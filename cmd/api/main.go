package main

import (
	"fmt"
	"net/http"

	"github.com/fieldops/payroll-backend-go/internal/config"
	appHTTP "github.com/fieldops/payroll-backend-go/internal/handler/http"
	"github.com/fieldops/payroll-backend-go/internal/pkg/cron"
	"github.com/fieldops/payroll-backend-go/internal/pkg/database"
	"github.com/fieldops/payroll-backend-go/internal/pkg/jwt"
	"github.com/fieldops/payroll-backend-go/internal/repository/postgresql"
	projectionService "github.com/fieldops/payroll-backend-go/internal/service/projection"
	rateService "github.com/fieldops/payroll-backend-go/internal/service/rate"
	reconcileService "github.com/fieldops/payroll-backend-go/internal/service/reconcile"
	statementService "github.com/fieldops/payroll-backend-go/internal/service/statement"
	timesheetService "github.com/fieldops/payroll-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	rateRepo := postgresql.NewRateRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	agreementRepo := postgresql.NewAgreementRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	rateResolver := rateService.NewResolver(rateRepo)
	reconcileSvc := reconcileService.NewService(attendanceRepo, jobRepo, timesheetRepo, rateResolver, nil)
	projectionSvc := projectionService.NewService(agreementRepo)
	timesheetSvc := timesheetService.NewService(timesheetRepo, rateResolver)
	statementSvc := statementService.NewService(timesheetRepo)

	reconciliationHandler := appHTTP.NewReconciliationHandler(reconcileSvc)
	jobHandler := appHTTP.NewJobHandler(reconcileSvc)
	projectionHandler := appHTTP.NewProjectionHandler(projectionSvc)
	payPeriodHandler := appHTTP.NewPayPeriodHandler()
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, statementSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		reconciliationHandler,
		jobHandler,
		projectionHandler,
		payPeriodHandler,
		timesheetHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewReconcileJobs(reconcileSvc, cfg.Reconcil.Interval, cfg.Reconcil.Lookback).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
