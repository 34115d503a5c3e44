package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"wisefido-breath/internal/models"
)

// SessionSummaryHeader 汇总表表头
var SessionSummaryHeader = []string{
	"Session ID",
	"Device ID",
	"Date",
	"Avg Breath Rate",
	"Min Breath Rate",
	"Max Breath Rate",
	"Avg Peaks In 20s",
	"Apnea Events",
	"Hypopnea Events",
	"AHI",
	"Longest Pause (s)",
	"Total Sleep (s)",
	"Started At",
	"Ended At",
}

// EventHeader 事件表表头
var EventHeader = []string{
	"Event ID",
	"Event Type",
	"Confirmed At",
	"Duration (s)",
	"Breath Rate",
	"AHI",
}

// GenerateSessionReport 生成会话报告 Excel 文件
// 两个工作表：Session Summary（单行汇总）与 Events（逐条事件）
func GenerateSessionReport(summary models.SessionSummary, events []models.BreathEvent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Session Summary"
	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeHeader(f, summarySheet, SessionSummaryHeader, headerStyle); err != nil {
		return nil, err
	}

	summaryRow := []interface{}{
		summary.SessionID,
		summary.DeviceID,
		summary.Date,
		summary.AvgBreathRate,
		summary.MinBreathRate,
		summary.MaxBreathRate,
		summary.AvgPeaksIn20,
		summary.ApneaEvents,
		summary.HypopneaEvents,
		summary.AHI,
		summary.LongestPauseSecs,
		summary.TotalSleepSecs,
		summary.StartedAt.Format("2006-01-02 15:04:05"),
		summary.EndedAt.Format("2006-01-02 15:04:05"),
	}
	if err := f.SetSheetRow(summarySheet, "A2", &summaryRow); err != nil {
		return nil, fmt.Errorf("failed to write summary row: %w", err)
	}

	eventSheet := "Events"
	if _, err := f.NewSheet(eventSheet); err != nil {
		return nil, fmt.Errorf("failed to create events sheet: %w", err)
	}
	if err := writeHeader(f, eventSheet, EventHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, e := range events {
		row := []interface{}{
			e.EventID,
			e.EventType,
			e.ConfirmedAt.Format("2006-01-02 15:04:05"),
			e.DurationSecs,
			e.BreathRate,
			e.AHI,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetSheetRow(eventSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write event row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteSessionReport 生成报告并写入目录，返回文件路径
func WriteSessionReport(dir string, summary models.SessionSummary, events []models.BreathEvent) (string, error) {
	data, err := GenerateSessionReport(summary, events)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("session-%s.xlsx", summary.SessionID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// writeHeader 写入表头行并应用样式
func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	endCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to build header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", endCell, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}
