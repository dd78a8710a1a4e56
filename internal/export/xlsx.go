// Package export writes generated plans to spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/utils"
)

const (
	WeeklySheet  = "Weekly Plan"
	RoutineSheet = "Daily Routine"
)

var (
	weeklyHeader  = []interface{}{"Day", "Start", "End", "Subject", "Type", "Minutes"}
	routineHeader = []interface{}{"Start", "End", "Activity", "Type", "Minutes"}
)

// WeeklyToXLSX writes one row per scheduled item. Days without items get a
// single row holding only the day label.
func WeeklyToXLSX(path string, schedule models.WeeklySchedule) error {
	var rows [][]interface{}
	for _, day := range schedule.Days {
		if len(day.Items) == 0 {
			rows = append(rows, []interface{}{day.Day})
			continue
		}
		for _, item := range day.Items {
			rows = append(rows, []interface{}{
				day.Day,
				utils.FormatMinutes(item.Start),
				utils.FormatMinutes(item.End()),
				item.Subject,
				string(item.Type),
				item.DurationMin,
			})
		}
	}
	return write(path, WeeklySheet, weeklyHeader, rows)
}

// RoutineToXLSX writes one row per time block in routine order.
func RoutineToXLSX(path string, routine models.Routine) error {
	rows := make([][]interface{}, 0, len(routine.Blocks))
	for _, b := range routine.Blocks {
		rows = append(rows, []interface{}{
			utils.FormatMinutes(b.Start),
			utils.FormatMinutes(b.End),
			b.Activity,
			string(b.Type),
			b.DurationMin(),
		})
	}
	return write(path, RoutineSheet, routineHeader, rows)
}

func write(path, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
