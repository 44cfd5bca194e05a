package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/korp/ecs"
)

const (
	tableColumnName = iota
	tableColumnEntries
	tableColumnCapacity
	tableColumnFill
)

type TableViewerWindow struct {
	rows          []ecs.TableStats
	selected      string
	sortColumn    int
	sortAscending bool
}

func NewTableViewerWindow() *TableViewerWindow {
	return &TableViewerWindow{
		sortColumn:    tableColumnEntries,
		sortAscending: false,
	}
}

// Render lists the registered component tables and returns the name of the
// selected one, or "" when none is selected.
func (tv *TableViewerWindow) Render(stats *ecs.StorageStats) string {
	imgui.SetNextWindowPosV(imgui.NewVec2(340, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 180), imgui.CondOnce)
	if !imgui.BeginV("Tables", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return tv.selected
	}

	tv.rows = append(tv.rows[:0], stats.Tables...)
	sortTables(tv.rows, tv.sortColumn, tv.sortAscending)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ComponentTables", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Table")
		imgui.TableSetupColumn("Entries")
		imgui.TableSetupColumn("Capacity")
		imgui.TableSetupColumn("Fill")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortTables(tv.rows, tv.sortColumn, tv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, table := range tv.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(table.Name, tv.selected == table.Name, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if tv.selected == table.Name {
					tv.selected = ""
				} else {
					tv.selected = table.Name
				}
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Len))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", table.Capacity))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f%%", fill(table.Len, table.Capacity)*100))
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Total: %d tables, %d live entities", len(tv.rows), stats.LiveEntities))
	imgui.End()
	return tv.selected
}

func sortTables(rows []ecs.TableStats, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b ecs.TableStats) int {
		var c int
		switch column {
		case tableColumnName:
			c = cmp.Compare(a.Name, b.Name)
		case tableColumnCapacity:
			c = cmp.Compare(a.Capacity, b.Capacity)
		case tableColumnFill:
			c = cmp.Compare(fill(a.Len, a.Capacity), fill(b.Len, b.Capacity))
		default:
			c = cmp.Compare(a.Len, b.Len)
		}
		if !ascending {
			return -c
		}
		return c
	})
}
