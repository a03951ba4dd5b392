package main

import (
	"fmt"
	"net/http"

	"github.com/venuedesk/finance-backend-go/internal/config"
	appHTTP "github.com/venuedesk/finance-backend-go/internal/handler/http"
	"github.com/venuedesk/finance-backend-go/internal/pkg/database"
	"github.com/venuedesk/finance-backend-go/internal/repository/postgresql"
	analyticsService "github.com/venuedesk/finance-backend-go/internal/service/analytics"
	settlementService "github.com/venuedesk/finance-backend-go/internal/service/settlement"
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

	companyRepo := postgresql.NewCompanyRepository(db)
	operatorRepo := postgresql.NewOperatorRepository(db)
	salaryRuleRepo := postgresql.NewSalaryRuleRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	debtRepo := postgresql.NewDebtRepository(db)
	refLoader := postgresql.NewReferenceLoader(companyRepo, operatorRepo, salaryRuleRepo)

	analyticsSvc := analyticsService.NewAnalyticsService(recordRepo, refLoader, cfg.Engine)
	settlementSvc := settlementService.NewSettlementService(recordRepo, debtRepo, refLoader, cfg.Engine)

	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	settlementHandler := appHTTP.NewSettlementHandler(settlementSvc)
	refdataHandler := appHTTP.NewRefdataHandler(companyRepo, operatorRepo, salaryRuleRepo)

	router := appHTTP.NewRouter(cfg, analyticsHandler, settlementHandler, refdataHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
