package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OMEGA178/faktury/internal/imagestore"
	"github.com/OMEGA178/faktury/internal/metrics"
	"github.com/OMEGA178/faktury/internal/models"
	"github.com/OMEGA178/faktury/internal/services"
)

const dateLayout = "2006-01-02"

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var invoiceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Issue a new invoice",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		ctx := cmd.Context()

		flags := cmd.Flags()
		company, _ := flags.GetString("company")
		nip, _ := flags.GetString("nip")
		amount, _ := flags.GetFloat64("amount")
		deadlineStr, _ := flags.GetString("deadline")
		term, _ := flags.GetInt("term")
		issueStr, _ := flags.GetString("issue-date")
		description, _ := flags.GetString("description")
		driverID, _ := flags.GetString("driver")
		fromCity, _ := flags.GetString("from-city")
		fromAddr, _ := flags.GetString("from-address")
		toCity, _ := flags.GetString("to-city")
		toAddr, _ := flags.GetString("to-address")

		deadline, err := time.Parse(dateLayout, deadlineStr)
		if err != nil {
			return fmt.Errorf("invalid deadline: %w", err)
		}

		p := services.AddInvoiceParams{
			CompanyName: company,
			NIP:         nip,
			Amount:      amount,
			Deadline:    deadline,
			PaymentTerm: term,
			Description: description,
			DriverID:    driverID,
		}
		if issueStr != "" {
			issue, err := time.Parse(dateLayout, issueStr)
			if err != nil {
				return fmt.Errorf("invalid issue date: %w", err)
			}
			p.IssueDate = &issue
		}
		if fromCity != "" && toCity != "" {
			from := models.Location{City: fromCity, Address: fromAddr}
			to := models.Location{City: toCity, Address: toAddr}
			p.LoadingLocation = &from
			p.UnloadingLocation = &to
			p.CalculatedDistance = app.Estimator.Estimate(ctx, from, to)
		}

		inv, err := app.Invoices.Add(ctx, p)
		if err != nil {
			return err
		}

		fmt.Printf("Added invoice %s for %s (%.2f zł)\n", inv.ID, inv.CompanyName, inv.Amount)
		if p.LoadingLocation != nil {
			if inv.CalculatedDistance > 0 {
				fmt.Printf("Estimated distance: %d km\n", inv.CalculatedDistance)
			} else {
				fmt.Println("Distance could not be estimated.")
			}
		}
		app.PushLocal(ctx, services.KeyInvoices)
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices, unpaid first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		invoices, err := app.Invoices.Invoices(cmd.Context())
		if err != nil {
			return err
		}
		if len(invoices) == 0 {
			fmt.Println("No invoices.")
			return nil
		}

		now := time.Now()
		for _, pass := range []bool{false, true} {
			for _, inv := range invoices {
				if inv.IsPaid != pass {
					continue
				}
				printInvoice(inv, now)
			}
		}
		return nil
	},
}

var invoicePayCmd = &cobra.Command{
	Use:   "pay <invoice-id>",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		inv, err := app.Invoices.MarkPaid(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if *inv.PaidOnTime {
			fmt.Printf("Paid on time: %s earns +10 points\n", inv.CompanyName)
		} else {
			fmt.Printf("Paid late: %s loses 5 points\n", inv.CompanyName)
		}
		app.PushLocal(cmd.Context(), services.KeyInvoices)
		return nil
	},
}

var invoiceTripCmd = &cobra.Command{
	Use:   "trip <invoice-id>",
	Short: "Break a trip's economics down per kilometre",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		drivers, err := app.Drivers.Drivers(ctx)
		if err != nil {
			return err
		}
		vehicles, err := app.Vehicles.Vehicles(ctx)
		if err != nil {
			return err
		}
		entries, err := app.Fuel.Entries(ctx)
		if err != nil {
			return err
		}

		for _, inv := range invoices {
			if inv.ID != args[0] {
				continue
			}
			b, ok := metrics.TripCost(inv, drivers, vehicles, entries)
			if !ok {
				fmt.Println("Trip distance is unknown, no breakdown possible.")
				return nil
			}
			fmt.Printf("%s, %d km for %.2f zł\n", inv.CompanyName, inv.CalculatedDistance, inv.Amount)
			fmt.Printf("  revenue:   %6.2f zł/km\n", b.RevenuePerKm)
			fmt.Printf("  fuel:      %6.2f zł/km\n", b.FuelCostPerKm)
			fmt.Printf("  driver:    %6.2f zł/km\n", b.DriverCostPerKm)
			fmt.Printf("  forwarder: %6.2f zł/km\n", b.ForwarderCostPerKm)
			fmt.Printf("  profit:    %6.2f zł/km (%.2f zł total, costs %.2f zł)\n",
				b.NetProfitPerKm, b.NetProfit, b.TotalCosts)
			return nil
		}
		return fmt.Errorf("invoice %s not found", args[0])
	},
}

var invoiceAttachCmd = &cobra.Command{
	Use:   "attach <invoice-id> <image-file>",
	Short: "Upload a photo and link it to an invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		ctx := cmd.Context()

		if !app.Images.Enabled() {
			return errors.New("no image bucket configured")
		}

		image, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		key, url, err := app.Images.PresignedPutURL(ctx)
		if err != nil {
			return err
		}
		if err := imagestore.Upload(url, image); err != nil {
			return err
		}

		cargo, _ := cmd.Flags().GetBool("cargo")
		if err := app.Invoices.AttachImage(ctx, args[0], key, cargo); err != nil {
			return err
		}

		fmt.Printf("Attached %s as %s\n", args[1], key)
		app.PushLocal(ctx, services.KeyInvoices)
		return nil
	},
}

var invoiceImagesCmd = &cobra.Command{
	Use:   "images <invoice-id>",
	Short: "Print download links for an invoice's photos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		ctx := cmd.Context()

		if !app.Images.Enabled() {
			return errors.New("no image bucket configured")
		}

		invoices, err := app.Invoices.Invoices(ctx)
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			if inv.ID != args[0] {
				continue
			}
			for _, key := range append(inv.InvoiceImages, inv.CargoImages...) {
				url, err := app.Images.PresignedGetURL(ctx, key)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n  %s\n", key, url)
			}
			if len(inv.InvoiceImages)+len(inv.CargoImages) == 0 {
				fmt.Println("No images.")
			}
			return nil
		}
		return fmt.Errorf("invoice %s not found", args[0])
	},
}

func printInvoice(inv models.Invoice, now time.Time) {
	state := "unpaid"
	switch {
	case inv.IsPaid:
		state = "paid"
	case metrics.IsOverdue(inv, now):
		state = "OVERDUE"
	case metrics.ShouldNotifyUpcoming(inv.Deadline, now, 3):
		state = "due soon"
	}
	fmt.Printf("%-40s %-20s %10.2f zł  due %s  [%s]\n",
		inv.ID, inv.CompanyName, inv.Amount, inv.Deadline.Format(dateLayout), state)
}

func init() {
	flags := invoiceAddCmd.Flags()
	flags.String("company", "", "company name")
	flags.String("nip", "", "company NIP")
	flags.Float64("amount", 0, "invoice amount in PLN")
	flags.String("deadline", "", "payment deadline (YYYY-MM-DD)")
	flags.Int("term", 30, "payment term in days (0 = cash)")
	flags.String("issue-date", "", "issue date (YYYY-MM-DD)")
	flags.String("description", "", "description")
	flags.String("driver", "", "assigned driver id")
	flags.String("from-city", "", "loading city")
	flags.String("from-address", "", "loading address")
	flags.String("to-city", "", "unloading city")
	flags.String("to-address", "", "unloading address")
	_ = invoiceAddCmd.MarkFlagRequired("company")
	_ = invoiceAddCmd.MarkFlagRequired("nip")
	_ = invoiceAddCmd.MarkFlagRequired("amount")
	_ = invoiceAddCmd.MarkFlagRequired("deadline")

	invoiceAttachCmd.Flags().Bool("cargo", false, "attach as a cargo photo")

	invoiceCmd.AddCommand(invoiceAddCmd, invoiceListCmd, invoicePayCmd, invoiceTripCmd, invoiceAttachCmd, invoiceImagesCmd)
	rootCmd.AddCommand(invoiceCmd)
}
