package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/services"
)

var fuelCmd = &cobra.Command{
	Use:   "fuel",
	Short: "Manage refuellings",
}

var fuelAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a refuelling",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		flags := cmd.Flags()
		vehicleID, _ := flags.GetString("vehicle")
		amount, _ := flags.GetFloat64("amount")
		liters, _ := flags.GetFloat64("liters")
		odometer, _ := flags.GetInt("odometer")
		dateStr, _ := flags.GetString("date")

		date := time.Now()
		if dateStr != "" {
			date, err = time.Parse(dateLayout, dateStr)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
		}

		entry, err := app.Fuel.Add(cmd.Context(), services.AddFuelParams{
			VehicleID:       vehicleID,
			Date:            date,
			Amount:          amount,
			Liters:          liters,
			OdometerReading: odometer,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added %s: %.2f l at %.2f zł/l\n", entry.ID, entry.Liters, entry.PricePerLiter)
		if entry.CalculatedConsumption != nil {
			fmt.Printf("Consumption since last refuelling: %.1f l/100km over %d km\n",
				*entry.CalculatedConsumption, *entry.DistanceSinceLastFuel)
		}
		app.PushLocal(cmd.Context(), services.KeyFuelEntries)
		return nil
	},
}

var fuelListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show per-vehicle fuel statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		ctx := cmd.Context()

		vehicles, err := app.Vehicles.Vehicles(ctx)
		if err != nil {
			return err
		}
		entries, err := app.Fuel.Entries(ctx)
		if err != nil {
			return err
		}
		if len(vehicles) == 0 {
			fmt.Println("No vehicles.")
			return nil
		}

		// entries merged in from other clients may carry stale
		// chain fields; recompute before aggregating
		for _, st := range metrics.VehicleStats(vehicles, metrics.Chain(entries)) {
			fmt.Printf("%s %s (%s)\n", st.Vehicle.Brand, st.Vehicle.Model, st.Vehicle.ID)
			fmt.Printf("  refuellings: %d, %.0f l for %.2f zł (avg %.2f zł/l)\n",
				st.FuelingsCount, st.TotalLiters, st.TotalCost, st.AvgPricePerLiter)
			fmt.Printf("  odometer %d km, %d km tracked\n", st.LatestOdometer, st.TotalDistance)
			if st.AvgConsumption > 0 {
				fmt.Printf("  consumption avg %.1f, last %.1f (%+.1f vs expected %.1f)\n",
					st.AvgConsumption, st.LastConsumption, st.ConsumptionDiff,
					st.Vehicle.ExpectedFuelConsumption)
			}
		}
		return nil
	},
}

var fuelDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a refuelling",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Fuel.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		app.PushLocal(cmd.Context(), services.KeyFuelEntries)
		return nil
	},
}

func init() {
	flags := fuelAddCmd.Flags()
	flags.String("vehicle", "", "vehicle id")
	flags.Float64("amount", 0, "total cost in PLN")
	flags.Float64("liters", 0, "litres tanked")
	flags.Int("odometer", 0, "odometer reading in km")
	flags.String("date", "", "refuelling date (YYYY-MM-DD), default today")
	_ = fuelAddCmd.MarkFlagRequired("vehicle")
	_ = fuelAddCmd.MarkFlagRequired("amount")
	_ = fuelAddCmd.MarkFlagRequired("liters")
	_ = fuelAddCmd.MarkFlagRequired("odometer")

	fuelCmd.AddCommand(fuelAddCmd, fuelListCmd, fuelDeleteCmd)
	rootCmd.AddCommand(fuelCmd)
}
