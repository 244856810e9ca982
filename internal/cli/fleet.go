package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OMEGA178/faktury/internal/services"
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage vehicles",
}

var vehicleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a vehicle",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		flags := cmd.Flags()
		p := services.AddVehicleParams{}
		p.Brand, _ = flags.GetString("brand")
		p.Model, _ = flags.GetString("model")
		p.Year, _ = flags.GetInt("year")
		p.Color, _ = flags.GetString("color")
		p.EngineType, _ = flags.GetString("engine")
		p.ExpectedFuelConsumption, _ = flags.GetFloat64("expected-consumption")
		p.InitialOdometerReading, _ = flags.GetInt("odometer")
		p.DriverName, _ = flags.GetString("driver-name")
		p.DriverPhone, _ = flags.GetString("driver-phone")

		v, err := app.Vehicles.Add(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Added vehicle %s: %s %s\n", v.ID, v.Brand, v.Model)
		app.PushLocal(cmd.Context(), services.KeyVehicles)
		return nil
	},
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		vehicles, err := app.Vehicles.Vehicles(cmd.Context())
		if err != nil {
			return err
		}
		if len(vehicles) == 0 {
			fmt.Println("No vehicles.")
			return nil
		}
		for _, v := range vehicles {
			fmt.Printf("%-40s %s %s (%d), expected %.1f l/100km", v.ID, v.Brand, v.Model, v.Year, v.ExpectedFuelConsumption)
			if v.DriverName != "" {
				fmt.Printf(", driver %s", v.DriverName)
			}
			fmt.Println()
		}
		return nil
	},
}

var vehicleDeleteCmd = &cobra.Command{
	Use:   "delete <vehicle-id>",
	Short: "Remove a vehicle without fuel history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Vehicles.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		app.PushLocal(cmd.Context(), services.KeyVehicles)
		return nil
	},
}

var driverCmd = &cobra.Command{
	Use:   "driver",
	Short: "Manage drivers",
}

var driverAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a driver",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		flags := cmd.Flags()
		p := services.AddDriverParams{}
		p.Name, _ = flags.GetString("name")
		p.Phone, _ = flags.GetString("phone")
		p.Email, _ = flags.GetString("email")
		p.RegistrationNumber, _ = flags.GetString("registration")
		p.CarBrand, _ = flags.GetString("car-brand")
		p.CarColor, _ = flags.GetString("car-color")
		if flags.Changed("daily-cost") {
			cost, _ := flags.GetFloat64("daily-cost")
			p.DailyCost = &cost
		}

		d, err := app.Drivers.Add(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Added driver %s: %s\n", d.ID, d.Name)
		app.PushLocal(cmd.Context(), services.KeyDrivers)
		return nil
	},
}

var driverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drivers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		drivers, err := app.Drivers.Drivers(cmd.Context())
		if err != nil {
			return err
		}
		if len(drivers) == 0 {
			fmt.Println("No drivers.")
			return nil
		}
		for _, d := range drivers {
			fmt.Printf("%-40s %-20s %s", d.ID, d.Name, d.Phone)
			if d.DailyCost != nil {
				fmt.Printf("  %.2f zł/day", *d.DailyCost)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	flags := vehicleAddCmd.Flags()
	flags.String("brand", "", "brand")
	flags.String("model", "", "model")
	flags.Int("year", 0, "production year")
	flags.String("color", "", "colour")
	flags.String("engine", "", "engine type")
	flags.Float64("expected-consumption", 0, "expected l/100km")
	flags.Int("odometer", 0, "current odometer reading in km")
	flags.String("driver-name", "", "usual driver name")
	flags.String("driver-phone", "", "usual driver phone")
	_ = vehicleAddCmd.MarkFlagRequired("brand")

	flags = driverAddCmd.Flags()
	flags.String("name", "", "full name")
	flags.String("phone", "", "phone number")
	flags.String("email", "", "email")
	flags.String("registration", "", "car registration number")
	flags.String("car-brand", "", "car brand")
	flags.String("car-color", "", "car colour")
	flags.Float64("daily-cost", 0, "daily cost in PLN")
	_ = driverAddCmd.MarkFlagRequired("name")
	_ = driverAddCmd.MarkFlagRequired("phone")

	vehicleCmd.AddCommand(vehicleAddCmd, vehicleListCmd, vehicleDeleteCmd)
	driverCmd.AddCommand(driverAddCmd, driverListCmd)
	rootCmd.AddCommand(vehicleCmd, driverCmd)
}
