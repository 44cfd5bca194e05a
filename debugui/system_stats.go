package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/kamstrup/intmap"
	"github.com/plus3/korp/ecs"
)

const (
	systemColumnName = iota
	systemColumnRuns
	systemColumnLast
	systemColumnAvg
	systemColumnMin
	systemColumnMax
)

type systemHistory struct {
	samples    *History
	executions int64
	plot       []float32
}

// SystemStatsWindow shows scheduler timings. Latency histories are keyed by
// system registration index and only advance when a system has run since the
// previous frame, so several frames between ticks do not repeat samples.
type SystemStatsWindow struct {
	historySize   int
	latency       *intmap.Map[int, *systemHistory]
	rows          []ecs.SystemStats
	sortColumn    int
	sortAscending bool
}

func NewSystemStatsWindow(historySize int) *SystemStatsWindow {
	return &SystemStatsWindow{
		historySize:   historySize,
		latency:       intmap.New[int, *systemHistory](16),
		sortColumn:    systemColumnAvg,
		sortAscending: false,
	}
}

// record pushes the last duration of every system that ran since the
// previous call.
func (ss *SystemStatsWindow) record(stats *ecs.SchedulerStats) {
	for i, system := range stats.Systems {
		h, ok := ss.latency.Get(i)
		if !ok {
			h = &systemHistory{samples: NewHistory(ss.historySize)}
			ss.latency.Put(i, h)
		}
		if system.ExecutionCount == h.executions {
			continue
		}
		h.executions = system.ExecutionCount
		h.samples.Push(milliseconds(system.LastDuration))
	}

	ss.rows = append(ss.rows[:0], stats.Systems...)
	sortSystems(ss.rows, ss.sortColumn, ss.sortAscending)
}

func (ss *SystemStatsWindow) Render(stats *ecs.SchedulerStats) {
	ss.record(stats)

	imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 420), imgui.CondOnce)
	if !imgui.BeginV("System Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Systems: %d  Tick: %d  Executions: %d", stats.SystemCount, stats.Tick, stats.TotalExecutions))
	imgui.Separator()

	if imgui.BeginTabBar("SystemTabs") {
		if imgui.BeginTabItem("Timings") {
			ss.renderTable()
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("Latency") {
			ss.renderChart(stats)
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	imgui.End()
}

func (ss *SystemStatsWindow) renderTable() {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("SystemTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last (ms)")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableSetupColumn("Min (ms)")
	imgui.TableSetupColumn("Max (ms)")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		ss.sortColumn = int(spec.ColumnIndex())
		ss.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortSystems(ss.rows, ss.sortColumn, ss.sortAscending)
		sortSpecs.SetSpecsDirty(false)
	}

	for _, system := range ss.rows {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(system.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", system.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", milliseconds(system.LastDuration)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", milliseconds(system.AvgDuration)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", milliseconds(system.MinDuration)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", milliseconds(system.MaxDuration)))
	}

	imgui.EndTable()
}

func (ss *SystemStatsWindow) renderChart(stats *ecs.SchedulerStats) {
	maxLatency := float32(0.1)
	for _, h := range ss.latency.All() {
		maxLatency = max(maxLatency, h.samples.Max())
	}

	if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, -1), 0) {
		implot.SetupAxesV("Tick", "Time (ms)", 0, 0)
		implot.SetupAxisLimitsV(implot.AxisY1, 0, float64(maxLatency*1.1), implot.CondAlways)

		for i, system := range stats.Systems {
			h, ok := ss.latency.Get(i)
			if !ok {
				continue
			}
			h.plot = h.samples.Ordered(h.plot)
			implot.PlotLineFloatPtrInt(system.Name, &h.plot[0], int32(len(h.plot)))
		}

		implot.EndPlot()
	}
}

func sortSystems(rows []ecs.SystemStats, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b ecs.SystemStats) int {
		var c int
		switch column {
		case systemColumnName:
			c = cmp.Compare(a.Name, b.Name)
		case systemColumnRuns:
			c = cmp.Compare(a.ExecutionCount, b.ExecutionCount)
		case systemColumnLast:
			c = cmp.Compare(a.LastDuration, b.LastDuration)
		case systemColumnMin:
			c = cmp.Compare(a.MinDuration, b.MinDuration)
		case systemColumnMax:
			c = cmp.Compare(a.MaxDuration, b.MaxDuration)
		default:
			c = cmp.Compare(a.AvgDuration, b.AvgDuration)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

func milliseconds(d time.Duration) float32 {
	return float32(d.Seconds() * 1000)
}
