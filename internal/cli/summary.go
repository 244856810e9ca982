package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/models"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the financial picture",
	Long: `Prints all-time totals, the current month against the previous one,
break-even progress against the business plan, and invoices that are
overdue or about to be.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		ctx := cmd.Context()

		invoices, err := app.Invoices.Invoices(ctx)
		if err != nil {
			return err
		}
		entries, err := app.Fuel.Entries(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		s := metrics.Summarize(invoices, entries)

		fmt.Println("All time")
		fmt.Printf("  earned:      %10.2f zł (%d paid invoices)\n", s.TotalEarned, s.PaidCount)
		fmt.Printf("  outstanding: %10.2f zł (%d unpaid invoices)\n", s.TotalOutstanding, s.UnpaidCount)
		fmt.Printf("  fuel:        %10.2f zł (%.0f l over %d refuellings)\n", s.TotalFuelExpense, s.TotalLiters, s.FuelEntriesCount)
		fmt.Printf("  net profit:  %10.2f zł\n", s.NetProfit)

		printMonthComparison(metrics.CompareMonths(invoices, entries, now))

		be := metrics.BreakEvenAnalysis(metrics.StatsForMonth(invoices, entries, now), models.DefaultBusinessMetrics())
		fmt.Printf("\nBreak-even: %.2f of %.2f zł (%.0f%%)", be.Achieved, be.Target, be.Percent)
		if be.Reached {
			fmt.Println(", reached")
		} else {
			fmt.Printf(", %.2f zł to go\n", be.Remaining)
		}

		printAttention(invoices, now)
		return nil
	},
}

func printMonthComparison(c metrics.MonthComparison) {
	fmt.Println("\nThis month")
	fmt.Printf("  revenue: %10.2f zł", c.Current.Revenue)
	if c.HasPreviousData {
		fmt.Printf("  (%+.0f%%)", c.RevenueChange)
	}
	fmt.Println()
	fmt.Printf("  fuel:    %10.2f zł", c.Current.Fuel)
	if c.HasPreviousData {
		fmt.Printf("  (%+.0f%%)", c.FuelChange)
	}
	fmt.Println()
	fmt.Printf("  profit:  %10.2f zł", c.Current.Profit)
	if c.HasPreviousData {
		fmt.Printf("  (%+.0f%%)", c.ProfitChange)
	}
	fmt.Println()
	if c.Current.TotalKm > 0 {
		fmt.Printf("  per km:  revenue %.2f, fuel %.2f over %d km\n",
			c.Current.RevenuePerKm, c.Current.FuelCostPerKm, c.Current.TotalKm)
	}
	if !c.HasPreviousData {
		fmt.Println("  no previous month to compare against")
	}
}

func printAttention(invoices []models.Invoice, now time.Time) {
	var overdue, upcoming []models.Invoice
	for _, inv := range invoices {
		if inv.IsPaid {
			continue
		}
		switch {
		case metrics.IsOverdue(inv, now):
			overdue = append(overdue, inv)
		case metrics.ShouldNotifyUpcoming(inv.Deadline, now, 3):
			upcoming = append(upcoming, inv)
		}
	}
	if len(overdue) == 0 && len(upcoming) == 0 {
		return
	}

	fmt.Println("\nNeeds attention")
	for _, inv := range overdue {
		fmt.Printf("  OVERDUE: %s owes %.2f zł since %s\n",
			inv.CompanyName, inv.Amount, inv.Deadline.Format(dateLayout))
	}
	for _, inv := range upcoming {
		fmt.Printf("  due in %d days: %s, %.2f zł\n",
			metrics.DaysUntilDeadline(inv.Deadline, now), inv.CompanyName, inv.Amount)
	}
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare this month with the previous one",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		ctx := cmd.Context()

		invoices, err := app.Invoices.Invoices(ctx)
		if err != nil {
			return err
		}
		entries, err := app.Fuel.Entries(ctx)
		if err != nil {
			return err
		}

		c := metrics.CompareMonths(invoices, entries, time.Now())
		printMonthComparison(c)
		if c.HasPreviousData {
			fmt.Printf("\nPrevious month: revenue %.2f, fuel %.2f, profit %.2f\n",
				c.Previous.Revenue, c.Previous.Fuel, c.Previous.Profit)
		}
		return nil
	},
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Show client payment reputation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		companies, err := app.Companies.Companies(cmd.Context())
		if err != nil {
			return err
		}
		if len(companies) == 0 {
			fmt.Println("No companies.")
			return nil
		}

		sorted := make([]models.Company, 0, len(companies))
		for _, c := range companies {
			sorted = append(sorted, c)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

		for _, c := range sorted {
			fmt.Printf("%-30s NIP %-12s score %4d (%s), %d invoices\n",
				c.Name, c.NIP, c.Score, metrics.LevelForScore(c.Score), len(c.Invoices))
			for _, h := range app.Companies.History(c) {
				mark := "on time"
				if !h.OnTime {
					mark = "late"
				}
				fmt.Printf("    %s  %10.2f zł  %s (%+d)\n",
					h.PaidAt.Format(dateLayout), h.Amount, mark, h.PointsEarned)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd, compareCmd, companyCmd)
}
