package cli

import (
	"fmt"

	"github.com/diillson/cloudsec-dashboard-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$  /$$                           /$$  /$$$$$$
        /$$__  $$| $$                          | $$ /$$__  $$
       | $$  \__/| $$  /$$$$$$  /$$   /$$  /$$$$$$$| $$  \__/  /$$$$$$   /$$$$$$$
       | $$      | $$ /$$__  $$| $$  | $$ /$$__  $$|  $$$$$$  /$$__  $$ /$$_____/
       | $$      | $$| $$  \ $$| $$  | $$| $$  | $$ \____  $$| $$$$$$$$| $$
       | $$    $$| $$| $$  | $$| $$  | $$| $$  | $$ /$$  \ $$| $$_____/| $$
       |  $$$$$$/| $$|  $$$$$$/|  $$$$$$/|  $$$$$$$|  $$$$$$/|  $$$$$$$|  $$$$$$$
        \______/ |__/ \______/  \______/  \_______/ \______/  \_______/ \_______/
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Cloud Security Dashboard CLI (v%s)", formattedVersion)))
}
