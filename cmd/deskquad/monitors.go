package main

import (
	"github.com/frudas24/deskquad/internal/monitor"
	"github.com/spf13/cobra"
)

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List monitors and their work areas",
	RunE:  runMonitors,
}

func init() {
	rootCmd.AddCommand(monitorsCmd)
}

// monitorsOutput is the printed monitor report.
type monitorsOutput struct {
	DPIAwareness string            `yaml:"dpiAwareness" json:"dpiAwareness"`
	Monitors     []monitor.Monitor `yaml:"monitors" json:"monitors"`
}

// runMonitors prints every monitor in physical pixels.
func runMonitors(_ *cobra.Command, _ []string) error {
	list, err := monitor.ListMonitors()
	if err != nil {
		return err
	}
	return printOut(monitorsOutput{DPIAwareness: monitor.DPIAwareness(), Monitors: list})
}
