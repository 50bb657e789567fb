package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/config"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/db"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports vendor registrations from an XLSX export. Expected columns:
// GSTIN | Vendor Type | Email | Turnover | State | ITC
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	registrationRepo := repository.NewRegistrationRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	registrations, err := readRegistrationsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total registrations to import: %d\n", len(registrations))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := registrationRepo.BulkCreate(registrations, batchSize); err != nil {
		log.Fatal("Failed to bulk create registrations:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total registrations imported: %d\n", len(registrations))
}

func readRegistrationsFromXLSX(filePath string) ([]model.Registration, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var registrations []model.Registration
	seen := make(map[string]bool)
	skippedCount := 0

	now := time.Now()

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 6 {
			skippedCount++
			continue
		}

		gstin := strings.ToUpper(strings.TrimSpace(row[0]))
		vendorType := strings.TrimSpace(row[1])
		email := strings.TrimSpace(row[2])
		turnoverStr := strings.TrimSpace(row[3])
		state := strings.TrimSpace(row[4])
		itc := strings.TrimSpace(row[5])

		if gstin == "" || email == "" || state == "" {
			skippedCount++
			continue
		}

		if !util.IsValidGSTIN(gstin) {
			skippedCount++
			continue
		}

		if !model.IsValidState(state) ||
			!model.IsValidVendorType(model.VendorType(vendorType)) ||
			!model.IsValidITCElection(model.ITCElection(itc)) {
			skippedCount++
			continue
		}

		turnover, err := strconv.ParseFloat(turnoverStr, 64)
		if err != nil || turnover <= 0 {
			skippedCount++
			continue
		}

		if seen[gstin] {
			skippedCount++
			continue
		}
		seen[gstin] = true

		registrations = append(registrations, model.Registration{
			GSTIN:         gstin,
			VendorType:    model.VendorType(vendorType),
			Email:         email,
			Turnover:      turnover,
			State:         state,
			ITC:           model.ITCElection(itc),
			EmailVerified: true, // trusted import, skips the external check
			VerifiedAt:    &now,
		})

		if len(registrations)%500 == 0 {
			fmt.Printf("Processed %d registrations...\n", len(registrations))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid registrations: %d\n", len(registrations))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return registrations, nil
}
