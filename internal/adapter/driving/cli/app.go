package cli

import (
	"context"
	"path/filepath"

	"github.com/diillson/cloudsec-dashboard-go/pkg/version"

	"github.com/diillson/cloudsec-dashboard-go/internal/adapter/driving/web"
	"github.com/diillson/cloudsec-dashboard-go/internal/application/usecase"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
	"github.com/spf13/cobra"
)

const (
	defaultProwlerDir    = "output"
	defaultScoutSuiteDir = "scoutsuite-report"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	aggregateUseCase *usecase.AggregateUseCase
	remediateUseCase *usecase.RemediateUseCase
	dashboardServer  *web.DashboardServer
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "cloudsec",
		Short:   "Cloud Security Dashboard CLI",
		Version: formattedVersion,
	}

	// Personaliza a template para incluir mais informações de versão
	rootCmd.SetVersionTemplate(`{{printf "Cloud Security Dashboard version: %s\n" .Version}}`)

	rootCmd.AddCommand(app.newAggregateCmd())
	rootCmd.AddCommand(app.newRemediateCmd())
	rootCmd.AddCommand(app.newServeCmd())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// newAggregateCmd monta o subcomando de agregação.
func (app *CLIApp) newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate Prowler and ScoutSuite results into normalized findings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			displayWelcomeBanner(app.version)
			go version.CheckLatestVersion(app.version)

			args, err := parseAggregateArgs(cmd)
			if err != nil {
				return err
			}
			return app.aggregateUseCase.Run(context.Background(), args)
		},
	}

	cmd.Flags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	cmd.Flags().String("prowler-dir", defaultProwlerDir, "Directory containing Prowler output files")
	cmd.Flags().String("scoutsuite-dir", defaultScoutSuiteDir, "Directory containing ScoutSuite report files")
	cmd.Flags().StringP("output-dir", "d", filepath.Join("scan-results", "aggregated"), "Directory to save the aggregated artifacts")
	cmd.Flags().StringSliceP("report-type", "y", []string{"csv"}, "Additional report types: csv, pdf")

	return cmd
}

// newRemediateCmd monta o subcomando de remediação.
func (app *CLIApp) newRemediateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Fix AWS security findings via the AWS CLI (dry run by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			displayWelcomeBanner(app.version)

			args, err := parseRemediateArgs(cmd)
			if err != nil {
				return err
			}
			_, err = app.remediateUseCase.Run(context.Background(), args)
			return err
		},
	}

	cmd.Flags().Bool("apply", false, "Actually apply remediations (default is dry run)")
	cmd.Flags().String("finding-type", "", "Only remediate this specific finding type (e.g., s3_bucket_default_encryption)")
	cmd.Flags().String("resource", "", "Only remediate this specific resource (e.g., a bucket name)")
	cmd.Flags().String("severity", "", "Only remediate findings of this severity (case-insensitive)")
	cmd.Flags().String("findings-dir", filepath.Join("scan-results", "aggregated"), "Directory containing aggregated findings")

	return cmd
}

// newServeCmd monta o subcomando do dashboard HTTP.
func (app *CLIApp) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest aggregated findings over a read-only JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			displayWelcomeBanner(app.version)

			addr, _ := cmd.Flags().GetString("addr")
			findingsDir, _ := cmd.Flags().GetString("findings-dir")

			args := &types.ServeArgs{
				Addr:        addr,
				FindingsDir: findingsDir,
			}
			return app.dashboardServer.Serve(args)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to bind the HTTP server to")
	cmd.Flags().String("findings-dir", filepath.Join("scan-results", "aggregated"), "Directory containing aggregated findings")

	return cmd
}

// parseAggregateArgs extrai os argumentos do subcomando aggregate.
func parseAggregateArgs(cmd *cobra.Command) (*types.AggregateArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	prowlerDir, _ := cmd.Flags().GetString("prowler-dir")
	scoutSuiteDir, _ := cmd.Flags().GetString("scoutsuite-dir")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	reportTypes, _ := cmd.Flags().GetStringSlice("report-type")

	// Flags informadas explicitamente vencem o arquivo de configuração;
	// flags no default contam como não informadas quando há config file.
	if configFile != "" {
		if !cmd.Flags().Changed("prowler-dir") {
			prowlerDir = ""
		}
		if !cmd.Flags().Changed("scoutsuite-dir") {
			scoutSuiteDir = ""
		}
		if !cmd.Flags().Changed("output-dir") {
			outputDir = ""
		}
		if !cmd.Flags().Changed("report-type") {
			reportTypes = nil
		}
	}

	outputDir, err := normalizeDir(outputDir)
	if err != nil {
		return nil, err
	}

	return &types.AggregateArgs{
		ConfigFile:    configFile,
		ProwlerDir:    prowlerDir,
		ScoutSuiteDir: scoutSuiteDir,
		OutputDir:     outputDir,
		ReportTypes:   reportTypes,
	}, nil
}

// parseRemediateArgs extrai os argumentos do subcomando remediate.
func parseRemediateArgs(cmd *cobra.Command) (*types.RemediateArgs, error) {
	apply, _ := cmd.Flags().GetBool("apply")
	findingType, _ := cmd.Flags().GetString("finding-type")
	resource, _ := cmd.Flags().GetString("resource")
	severity, _ := cmd.Flags().GetString("severity")
	findingsDir, _ := cmd.Flags().GetString("findings-dir")

	return &types.RemediateArgs{
		Apply:       apply,
		FindingType: findingType,
		Resource:    resource,
		Severity:    severity,
		FindingsDir: findingsDir,
	}, nil
}

// normalizeDir converte um diretório para caminho absoluto; vazio fica vazio
// para ser preenchido pelo arquivo de configuração.
func normalizeDir(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return absDir, nil
}

// SetAggregateUseCase sets the aggregate use case for the CLI app.
func (app *CLIApp) SetAggregateUseCase(useCase *usecase.AggregateUseCase) {
	app.aggregateUseCase = useCase
}

// SetRemediateUseCase sets the remediate use case for the CLI app.
func (app *CLIApp) SetRemediateUseCase(useCase *usecase.RemediateUseCase) {
	app.remediateUseCase = useCase
}

// SetDashboardServer sets the dashboard HTTP server for the CLI app.
func (app *CLIApp) SetDashboardServer(server *web.DashboardServer) {
	app.dashboardServer = server
}
