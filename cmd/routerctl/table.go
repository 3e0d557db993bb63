package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/xuri/excelize/v2"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// printRouteTable renders routes as an aligned, priority-ordered table.
func printRouteTable(routes []routeInfo) {
	if len(routes) == 0 {
		fmt.Println(mutedStyle.Render("(no routes)"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-24s %-10s %s", "NAME", "PRIORITY", "TARGET")))
	for _, r := range routes {
		fmt.Printf("%-24s %-10d %s\n", r.Name, r.Priority, r.Target)
	}
}

// exportRouteTable writes routes to an .xlsx workbook at path, one row
// per route, for handoff to non-technical operators.
func exportRouteTable(path string, routes []routeInfo) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Routes"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Name", "Priority", "Target"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range routes {
		row := i + 2
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		priorityCell, _ := excelize.CoordinatesToCellName(2, row)
		targetCell, _ := excelize.CoordinatesToCellName(3, row)
		f.SetCellValue(sheet, nameCell, r.Name)
		f.SetCellValue(sheet, priorityCell, r.Priority)
		f.SetCellValue(sheet, targetCell, r.Target)
	}

	return f.SaveAs(path)
}

// printSessionList renders a session_list response's Data as names.
func printSessionList(data any) {
	names, ok := data.([]any)
	if !ok || len(names) == 0 {
		fmt.Println(mutedStyle.Render("(no sessions)"))
		return
	}
	for _, n := range names {
		fmt.Println(fmt.Sprint(n))
	}
}

// exportSessionList writes session names to an .xlsx workbook at path.
func exportSessionList(path string, data any) error {
	names, _ := data.([]any)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sessions"
	f.SetSheetName(f.GetSheetName(0), sheet)
	f.SetCellValue(sheet, "A1", "Session Name")
	for i, n := range names {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue(sheet, cell, fmt.Sprint(n))
	}

	return f.SaveAs(path)
}
