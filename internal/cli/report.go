package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OMEGA178/faktury/internal/models"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and browse period reports",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report for the current period",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		typStr, _ := cmd.Flags().GetString("type")
		typ := models.ReportType(typStr)
		switch typ {
		case models.ReportWeekly, models.ReportMonthly, models.ReportQuarterly:
		default:
			return fmt.Errorf("unknown report type %q", typStr)
		}

		r, err := app.Reports.Generate(cmd.Context(), typ)
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	},
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		reports, err := app.Reports.Reports(cmd.Context())
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			fmt.Println("No reports.")
			return nil
		}
		for _, r := range reports {
			fmt.Printf("%-45s %-10s %s to %s  revenue %.2f, profit %.2f\n",
				r.ID, r.Type,
				r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
				r.TotalRevenue, r.NetProfit)
		}
		return nil
	},
}

func printReport(r models.Report) {
	fmt.Printf("%s report %s to %s\n", r.Type, r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout))
	fmt.Printf("  revenue:    %10.2f zł (%d invoices)\n", r.TotalRevenue, r.InvoicesCount)
	fmt.Printf("  fuel:       %10.2f zł (%d refuellings, avg %.2f zł/l)\n",
		r.TotalFuelCost, r.FuelEntriesCount, r.AvgFuelPrice)
	fmt.Printf("  net profit: %10.2f zł\n", r.NetProfit)
	fmt.Printf("  distance:   %7d km\n", r.TotalKilometers)
}

func init() {
	reportGenerateCmd.Flags().String("type", "monthly", "weekly, monthly or quarterly")

	reportCmd.AddCommand(reportGenerateCmd, reportListCmd)
	rootCmd.AddCommand(reportCmd)
}
