package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/game"
)

const (
	bodyColumnEntity = iota
	bodyColumnShape
	bodyColumnX
	bodyColumnY
	bodyColumnSpeed
)

type BodyInfo struct {
	Entity   ecs.Entity
	Shape    game.ShapeKind
	Centroid fixed.Vec2
	Speed    fixed.Flint
}

type EntityBrowserWindow struct {
	rows               []BodyInfo
	filtered           []BodyInfo
	selected           *ecs.Entity
	filterText         string
	sortColumn         int
	sortAscending      bool
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowserWindow(maxEntitiesPerPage int) *EntityBrowserWindow {
	return &EntityBrowserWindow{
		sortColumn:         bodyColumnEntity,
		sortAscending:      true,
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
	}
}

// Selected returns the selected body, or nil.
func (eb *EntityBrowserWindow) Selected() *ecs.Entity {
	return eb.selected
}

func (eb *EntityBrowserWindow) Select(e ecs.Entity) {
	eb.selected = &e
}

func (eb *EntityBrowserWindow) Render(tables game.Tables) {
	eb.refresh(tables)

	imgui.SetNextWindowPosV(imgui.NewVec2(870, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(400, 360), imgui.CondOnce)
	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BodyTable", 5, tableFlags, imgui.NewVec2(0, 260), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("X")
		imgui.TableSetupColumn("Y")
		imgui.TableSetupColumn("Speed")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortBodies(eb.rows, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		eb.filtered = filterBodies(eb.filtered[:0], eb.rows, eb.filterText)
		visible, pages := paginate(eb.filtered, eb.currentPage, eb.maxEntitiesPerPage)
		eb.currentPage = min(eb.currentPage, max(pages-1, 0))

		for _, body := range visible {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selected != nil && *eb.selected == body.Entity
			if imgui.SelectableBoolV(body.Entity.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(body.Entity)
			}

			imgui.TableNextColumn()
			imgui.Text(body.Shape.String())
			imgui.TableNextColumn()
			imgui.Text(body.Centroid.X.String())
			imgui.TableNextColumn()
			imgui.Text(body.Centroid.Y.String())
			imgui.TableNextColumn()
			imgui.Text(body.Speed.String())
		}

		imgui.EndTable()

		if pages > 1 {
			imgui.Text(fmt.Sprintf("Page %d / %d (%d bodies)", eb.currentPage+1, pages, len(eb.filtered)))
			imgui.SameLine()
			if imgui.Button("Prev") && eb.currentPage > 0 {
				eb.currentPage--
			}
			imgui.SameLine()
			if imgui.Button("Next") && eb.currentPage < pages-1 {
				eb.currentPage++
			}
		} else {
			imgui.Text(fmt.Sprintf("Total: %d bodies", len(eb.filtered)))
		}
	}

	imgui.End()
}

// refresh rebuilds the rows from the current tick and drops a selection whose
// entity was destroyed.
func (eb *EntityBrowserWindow) refresh(tables game.Tables) {
	eb.rows = collectBodies(eb.rows[:0], tables)
	sortBodies(eb.rows, eb.sortColumn, eb.sortAscending)

	if eb.selected != nil && !tables.Bodies.Has(*eb.selected) {
		eb.selected = nil
	}
}

func collectBodies(dst []BodyInfo, tables game.Tables) []BodyInfo {
	for e, body := range tables.Bodies.All() {
		info := BodyInfo{
			Entity:   e,
			Shape:    body.New.Shape.Kind,
			Centroid: body.New.Centroid,
		}
		if motion, ok := tables.Motions.Get(e); ok {
			info.Speed = motion.Velocity.Len()
		}
		dst = append(dst, info)
	}
	return dst
}

func sortBodies(rows []BodyInfo, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b BodyInfo) int {
		var c int
		switch column {
		case bodyColumnShape:
			c = cmp.Compare(a.Shape, b.Shape)
		case bodyColumnX:
			c = a.Centroid.X.Cmp(b.Centroid.X)
		case bodyColumnY:
			c = a.Centroid.Y.Cmp(b.Centroid.Y)
		case bodyColumnSpeed:
			c = a.Speed.Cmp(b.Speed)
		default:
			c = cmp.Or(cmp.Compare(a.Entity.Index, b.Entity.Index), cmp.Compare(a.Entity.Generation, b.Entity.Generation))
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// filterBodies appends the rows whose entity or shape contains text, ignoring
// case.
func filterBodies(dst, rows []BodyInfo, text string) []BodyInfo {
	if text == "" {
		return append(dst, rows...)
	}

	filterLower := strings.ToLower(text)
	for _, body := range rows {
		if strings.Contains(body.Entity.String(), filterLower) ||
			strings.Contains(body.Shape.String(), filterLower) {
			dst = append(dst, body)
		}
	}
	return dst
}

// paginate returns the rows of page, clamped to the last page, and the page
// count.
func paginate[T any](rows []T, page, perPage int) ([]T, int) {
	pages := (len(rows) + perPage - 1) / perPage
	if pages == 0 {
		return nil, 0
	}
	page = min(max(page, 0), pages-1)
	start := page * perPage
	end := min(start+perPage, len(rows))
	return rows[start:end], pages
}
