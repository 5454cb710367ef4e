package reporting

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

const animalSheet = "Animals"

var animalColumns = []string{"Tag ID", "Breed", "Age (years)", "Weight (kg)", "Health Status", "Farm", "Latitude", "Longitude"}

// ExportAnimals writes the animal register of branchID (every farm when empty)
// as an xlsx workbook.
func (s *Service) ExportAnimals(_ context.Context, branchID string, w io.Writer) error {
	f, err := buildAnimalWorkbook(s.store.Animals(branchID))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write animal workbook: %w", err)
	}
	return nil
}

func buildAnimalWorkbook(animals []models.Animal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", animalSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"16A34A"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for colIdx, title := range animalColumns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		_ = f.SetCellValue(animalSheet, cell, title)
		_ = f.SetCellStyle(animalSheet, cell, cell, headerStyle)
	}

	for rowIdx, a := range animals {
		values := []interface{}{a.TagID, a.Breed, a.Age, a.Weight, string(a.HealthStatus), a.BranchName, a.Latitude, a.Longitude}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(animalSheet, cell, value); err != nil {
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	_ = f.SetColWidth(animalSheet, "A", "F", 18)
	return f, nil
}
