package main

import (
	"fmt"
	"os"

	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/aws"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/awscli"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/scanner"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driven/store"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driving/web"
	"github.com/diillson/cloudsec-dashboard-go/internal/application/usecase"
	"github.com/diillson/cloudsec-dashboard-go/pkg/console"
	"github.com/diillson/cloudsec-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	scannerRepo := scanner.NewScannerRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	findingsRepo := store.NewFindingsStore()
	identityRepo := aws.NewIdentityRepository()
	runner := awscli.NewExecRunner()
	consoleImpl := console.NewConsole()

	// Inicializa os casos de uso
	aggregateUseCase := usecase.NewAggregateUseCase(
		scannerRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)
	remediateUseCase := usecase.NewRemediateUseCase(
		findingsRepo,
		identityRepo,
		runner,
		consoleImpl,
		os.Stdin,
	)
	dashboardServer := web.NewDashboardServer(findingsRepo, consoleImpl)

	// Define os casos de uso no aplicativo CLI
	app.SetAggregateUseCase(aggregateUseCase)
	app.SetRemediateUseCase(remediateUseCase)
	app.SetDashboardServer(dashboardServer)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
