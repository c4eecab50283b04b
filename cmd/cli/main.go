package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kmoroney/carraig-house/internal/config"
	"github.com/kmoroney/carraig-house/pkg/clients/sheetsclient"
	"github.com/kmoroney/carraig-house/pkg/core/access"
	"github.com/kmoroney/carraig-house/pkg/core/activity"
	"github.com/kmoroney/carraig-house/pkg/core/availability"
	"github.com/kmoroney/carraig-house/pkg/core/dateutil"
	"github.com/kmoroney/carraig-house/pkg/core/model"
	"github.com/kmoroney/carraig-house/pkg/core/rooms"
	"github.com/kmoroney/carraig-house/pkg/core/selection"
	"github.com/kmoroney/carraig-house/pkg/core/services"
	"github.com/kmoroney/carraig-house/pkg/db"
	"github.com/kmoroney/carraig-house/pkg/sheetssql"
	"github.com/kmoroney/carraig-house/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg          *config.Config
	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	database     *db.DB
	catalog      *rooms.Catalog
	engine       *availability.Engine
	recorder     *activity.Recorder
	logger       *zap.Logger
	ctx          context.Context
}

// defaultSettings are the fallback passwords used when the settings sheet
// has no entries
func (a *App) defaultSettings() model.Settings {
	return model.Settings{
		FamilyPassword: a.cfg.DefaultFamilyPassword,
		AdminPassword:  a.cfg.DefaultAdminPassword,
	}
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Carraig House CLI - Manage vacation home bookings",
		Long:  `A CLI tool for managing the family vacation home: room availability, bookings, and the activity log.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(availabilityCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(activityCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Load OAuth client configuration
	app.logger.Info("Loading OAuth client configuration")
	app.oauthCfg, err = config.LoadOAuthClient(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.logger.Debug("OAuth configuration loaded successfully")

	// Initialize sheets client
	app.logger.Info("Initializing sheets client")
	app.sheetsClient, err = sheetsclient.NewClient(app.ctx, app.oauthCfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.logger.Debug("Sheets client initialized successfully")

	// Room catalog and blackout rules
	catalogRooms := make([]model.Room, 0, len(app.cfg.Rooms))
	for _, room := range app.cfg.Rooms {
		catalogRooms = append(catalogRooms, model.Room{ID: room.ID, Title: room.Title})
	}
	app.catalog = rooms.NewCatalog(catalogRooms)

	blackouts := make([]availability.Blackout, 0, len(app.cfg.Blackouts))
	for _, blackoutCfg := range app.cfg.Blackouts {
		blackout, err := availability.NewBlackout(blackoutCfg.RRule, blackoutCfg.Reason)
		if err != nil {
			return fmt.Errorf("failed to parse blackout rule %q: %w", blackoutCfg.RRule, err)
		}
		blackouts = append(blackouts, blackout)
	}
	app.engine = availability.NewEngine(app.catalog, blackouts...)

	// Initialize database schema
	app.logger.Info("Initializing database schema")
	schema, err := sheetssql.SchemaFromModels(db.Models()...)
	if err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}
	app.logger.Debug("Database schema created", zap.Int("tables", len(schema.Tables)))

	// Initialize SheetsSQL database
	app.logger.Info("Connecting to database", zap.String("spreadsheet_id", app.cfg.DatabaseSheetID))
	ssqlDB, err := sheetssql.NewDB(app.sheetsClient, app.cfg.DatabaseSheetID, schema)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize DB layer
	app.database = db.NewDB(ssqlDB, app.catalog)
	app.logger.Info("Database initialized successfully")

	// Activity log: local JSON file, mirrored to the database best-effort
	app.recorder = activity.NewRecorder(
		activity.NewFileStore(app.cfg.ActivityLogPath),
		app.database,
		activity.CurrentSession(),
	)

	return nil
}

// Command definitions

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show per-day availability for the coming months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			months, _ := cmd.Flags().GetInt("months")
			if months < 1 {
				return fmt.Errorf("months must be at least 1, got %d", months)
			}

			bookings, err := services.LoadBookings(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			start := dateutil.StartOfDay(time.Now())
			end := start.AddDate(0, months, 0)

			currentMonth := ""
			for day := start; day.Before(end); day = dateutil.NextDay(day) {
				month := day.Format("January 2006")
				if month != currentMonth {
					currentMonth = month
					fmt.Printf("\n%s\n", month)
				}

				dayInfo := app.engine.DateAvailability(day, bookings)
				marker := statusMarker(dayInfo.Status)

				detail := ""
				if dayInfo.Status == availability.StatusPartial {
					titles := make([]string, 0, len(dayInfo.BookedRooms))
					for _, roomID := range dayInfo.BookedRooms {
						titles = append(titles, app.catalog.Title(roomID))
					}
					detail = "  booked: " + strings.Join(titles, ", ")
				}

				fmt.Printf("  %s %s  %-9s%s\n", marker, dateutil.FormatCalendarDay(day), dayInfo.Status, detail)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("months", 2, "Number of months to display")

	return cmd
}

func statusMarker(status availability.Status) string {
	switch status {
	case availability.StatusAvailable:
		return " "
	case availability.StatusPartial:
		return "~"
	default:
		return "x"
	}
}

func availabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "availability <checkin> <checkout>",
		Short: "Show bookable room options for a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkin, ok := dateutil.ParseCalendarDay(args[0])
			if !ok {
				return fmt.Errorf("invalid check-in date %q, expected YYYY-MM-DD", args[0])
			}
			checkout, ok := dateutil.ParseCalendarDay(args[1])
			if !ok {
				return fmt.Errorf("invalid check-out date %q, expected YYYY-MM-DD", args[1])
			}
			if !checkout.After(checkin) {
				return fmt.Errorf("check-out must be after check-in")
			}

			bookings, err := services.LoadBookings(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			options := app.engine.AvailableRoomOptions(checkin, checkout, bookings)
			nights := dateutil.Nights(checkin, checkout)

			fmt.Printf("\n%s to %s (%d nights)\n\n", args[0], args[1], nights)
			if len(options) == 0 {
				fmt.Println("No rooms available for these dates.")
				return nil
			}

			fmt.Println("Available options:")
			for _, option := range options {
				if option == model.EntireHouse {
					fmt.Printf("  - %s\n", option)
				} else {
					fmt.Printf("  - %s\n", app.catalog.Title(option))
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookings sorted by start date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := services.LoadBookings(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			if len(bookings) == 0 {
				fmt.Println("\nNo bookings.")
				return nil
			}

			fmt.Printf("\nFound %d bookings:\n\n", len(bookings))
			for _, booking := range bookings {
				printBooking(booking)
			}

			return nil
		},
	}
}

func printBooking(booking model.Booking) {
	locked := ""
	if access.NormalizePIN(booking.PIN) != "" {
		locked = " [PIN]"
	}

	fmt.Printf("- %s to %s  %s  %s (%s)%s\n",
		booking.StartDate,
		booking.EndDate,
		booking.GuestName,
		app.catalog.Encode(booking.Rooms),
		booking.ID,
		locked,
	)
	if booking.Notes != "" {
		fmt.Printf("    %s\n", booking.Notes)
	}
}

func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book <checkin> <checkout> <guest> <room>...",
		Short: "Create a booking for one or more rooms, or 'Entire House'",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")
			pin, _ := cmd.Flags().GetString("pin")

			result, err := services.CreateBooking(app.ctx, app.database, app.engine, app.recorder, app.logger, services.CreateBookingArgs{
				GuestName: args[2],
				Rooms:     args[3:],
				StartDate: args[0],
				EndDate:   args[1],
				Notes:     notes,
				PIN:       pin,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nBooking created!\n\n")
			printBooking(result.Booking)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("notes", "", "Free-text notes for the booking")
	cmd.Flags().String("pin", "", "PIN protecting future edits")

	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a booking (flags left unset keep their stored values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updateArgs := services.UpdateBookingArgs{ID: args[0]}

			// Only flags the user actually set become changes; everything
			// else keeps its stored value
			cmd.Flags().Visit(func(flag *pflag.Flag) {
				switch flag.Name {
				case "guest":
					guest, _ := cmd.Flags().GetString("guest")
					updateArgs.GuestName = &guest
				case "rooms":
					updateArgs.Rooms, _ = cmd.Flags().GetStringSlice("rooms")
				case "checkin":
					checkin, _ := cmd.Flags().GetString("checkin")
					updateArgs.StartDate = &checkin
				case "checkout":
					checkout, _ := cmd.Flags().GetString("checkout")
					updateArgs.EndDate = &checkout
				case "notes":
					notes, _ := cmd.Flags().GetString("notes")
					updateArgs.Notes = &notes
				case "set-pin":
					newPIN, _ := cmd.Flags().GetString("set-pin")
					updateArgs.NewPIN = &newPIN
				}
			})
			updateArgs.PIN, _ = cmd.Flags().GetString("pin")

			gate, err := resolveGate(cmd)
			if err != nil {
				return err
			}

			result, err := services.UpdateBooking(app.ctx, app.database, app.engine, app.recorder, gate, app.logger, updateArgs)
			if err != nil {
				return err
			}

			fmt.Printf("\nBooking updated!\n\n")
			printBooking(result.Booking)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("guest", "", "New guest name")
	cmd.Flags().StringSlice("rooms", nil, "New room set, or 'Entire House'")
	cmd.Flags().String("checkin", "", "New check-in date (YYYY-MM-DD)")
	cmd.Flags().String("checkout", "", "New check-out date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "New notes")
	cmd.Flags().String("set-pin", "", "Replace the booking's PIN")
	cmd.Flags().String("pin", "", "Current PIN, if the booking is protected")
	cmd.Flags().String("admin-password", "", "Admin password, bypasses the PIN gate")

	return cmd
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, _ := cmd.Flags().GetString("pin")

			gate, err := resolveGate(cmd)
			if err != nil {
				return err
			}

			result, err := services.DeleteBooking(app.ctx, app.database, app.catalog, app.recorder, gate, app.logger, services.DeleteBookingArgs{
				ID:  args[0],
				PIN: pin,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nBooking deleted: %s (%s to %s)\n", result.Booking.GuestName, result.Booking.StartDate, result.Booking.EndDate)

			return nil
		},
	}

	cmd.Flags().String("pin", "", "Current PIN, if the booking is protected")
	cmd.Flags().String("admin-password", "", "Admin password, bypasses the PIN gate")

	return cmd
}

// resolveGate builds the PIN gate, granting admin when the admin password
// checks out against the stored settings
func resolveGate(cmd *cobra.Command) (access.Gate, error) {
	adminPassword, _ := cmd.Flags().GetString("admin-password")
	if adminPassword == "" {
		return access.Gate{}, nil
	}

	settings, err := app.database.GetSettings(app.ctx, app.defaultSettings())
	if err != nil {
		return access.Gate{}, fmt.Errorf("failed to fetch settings: %w", err)
	}

	role, err := access.Authenticate(adminPassword, settings)
	if err != nil {
		return access.Gate{}, err
	}
	if role != access.RoleAdmin {
		return access.Gate{}, fmt.Errorf("admin access requires the admin password")
	}

	return access.Gate{Admin: true}, nil
}

func activityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "View the activity log (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			remote, _ := cmd.Flags().GetBool("remote")

			log := services.ActivityLog(app.recorder)
			if remote {
				// The mirrored copy on the sheet, instead of this
				// machine's local log
				mirrored, err := app.database.GetActivity(app.ctx)
				if err != nil {
					return err
				}
				log = staticActivityLog(mirrored)
			}

			entries, err := services.ViewActivity(app.ctx, app.database, log, app.logger, password, app.defaultSettings())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("\nActivity log is empty.")
				return nil
			}

			fmt.Printf("\n%d activity entries (newest first):\n\n", len(entries))
			for _, entry := range entries {
				data, _ := json.Marshal(entry.Data)
				fmt.Printf("- %s  %-6s  booking=%s\n    %s\n",
					entry.Timestamp.Format(time.RFC3339),
					entry.Action,
					entry.BookingID,
					string(data),
				)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("password", "", "Admin password")
	cmd.Flags().Bool("remote", false, "Read the mirrored log from the sheet instead of the local file")

	return cmd
}

// staticActivityLog adapts an already-fetched entry slice to the activity
// log interface
type staticActivityLog []model.ActivityEntry

func (l staticActivityLog) Entries() []model.ActivityEntry {
	return l
}

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive booking session with two-click date selection",
		Long: `Start an interactive session for picking dates on the calendar.
The first 'select' sets the check-in day, the second sets the check-out day,
and 'book' turns the completed selection into a booking.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := services.LoadBookings(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}

			var sel selection.Selection

			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				switch cmdName {
				case "help":
					printInteractiveHelp()

				case "select":
					if len(cmdArgs) != 1 {
						fmt.Println("Usage: select <YYYY-MM-DD>")
						continue
					}
					day, ok := dateutil.ParseCalendarDay(cmdArgs[0])
					if !ok {
						fmt.Printf("Invalid date %q, expected YYYY-MM-DD\n", cmdArgs[0])
						continue
					}
					if err := sel.Select(day, app.engine, bookings); err != nil {
						fmt.Printf("Error: %v\n", err)
						continue
					}
					printSelection(&sel)

				case "status":
					printSelection(&sel)

				case "reset":
					sel.Reset()
					fmt.Println("Selection cleared.")

				case "list":
					for _, booking := range bookings {
						printBooking(booking)
					}

				case "book":
					if !sel.Complete() {
						fmt.Println("Select a check-in and check-out day first.")
						continue
					}
					if len(cmdArgs) < 2 {
						fmt.Println("Usage: book <guest> <room>...")
						continue
					}

					result, err := services.CreateBooking(app.ctx, app.database, app.engine, app.recorder, app.logger, services.CreateBookingArgs{
						GuestName: cmdArgs[0],
						Rooms:     cmdArgs[1:],
						StartDate: dateutil.FormatCalendarDay(sel.Checkin()),
						EndDate:   dateutil.FormatCalendarDay(sel.Checkout()),
					})
					if err != nil {
						fmt.Printf("Error: %v\n", err)
						continue
					}

					bookings = result.Bookings
					sel.Reset()
					fmt.Println("Booking created!")
					printBooking(result.Booking)

				default:
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmdName)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}
}

func printSelection(sel *selection.Selection) {
	switch sel.State() {
	case selection.StateEmpty:
		fmt.Println("No dates selected.")
	case selection.StateCheckinOnly:
		fmt.Printf("Check-in %s, pick a check-out day.\n", dateutil.FormatCalendarDay(sel.Checkin()))
	case selection.StateComplete:
		fmt.Printf("Check-in %s, check-out %s (%d nights).\n",
			dateutil.FormatCalendarDay(sel.Checkin()),
			dateutil.FormatCalendarDay(sel.Checkout()),
			sel.Nights(),
		)
	}
}

func printInteractiveHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  select <YYYY-MM-DD>            Pick a check-in, then a check-out day")
	fmt.Println("  status                         Show the current selection")
	fmt.Println("  reset                          Clear the selection")
	fmt.Println("  book <guest> <room>...         Book the selected dates")
	fmt.Println("  list                           List bookings")
	fmt.Println("  help                           Show this help message")
	fmt.Println("  exit, quit                     Exit the interactive session")
}
