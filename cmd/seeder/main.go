package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/locvowork/employee_management_backend/internal/bootstrap"
	"github.com/locvowork/employee_management_backend/internal/database"
	"github.com/locvowork/employee_management_backend/internal/logger"
)

func main() {
	// Define flags
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	departments := flag.Int("departments", 0, "Number of departments (overrides preset)")
	employees := flag.Int("employees", 0, "Number of employees (overrides preset)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for generated names and dates")
	workers := flag.Int("workers", 4, "Concurrent employee inserts")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt of clear")

	flag.Parse()

	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, err, "Failed to initialize application")
		os.Exit(1)
	}
	defer app.DB.Close()

	seeder := database.NewDataSeeder(app.Departments, app.Employees, *seed, *workers)

	switch *action {
	case "seed":
		numDepartments, numEmployees := database.GetPresetConfig(database.SeedPreset(*preset))
		if *departments > 0 {
			numDepartments = *departments
		}
		if *employees > 0 {
			numEmployees = *employees
		}

		stats, err := seeder.SeedData(ctx, numDepartments, numEmployees)
		if err != nil {
			logger.ErrorLog(ctx, err, "Seeding failed")
			os.Exit(1)
		}
		logger.InfoLog(ctx, "Seeded %d departments and %d employees", stats.Departments, stats.Employees)

	case "clear":
		if !*yes && !confirm("This will delete every employee and department. Continue? (yes/no): ") {
			fmt.Println("Cancelled.")
			return
		}
		if err := seeder.ClearData(ctx); err != nil {
			logger.ErrorLog(ctx, err, "Clear failed")
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	var response string
	fmt.Scanln(&response)
	return response == "yes"
}
