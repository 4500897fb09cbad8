package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"boiler-ai/backend/config"
	"boiler-ai/backend/internal/model"
	"boiler-ai/backend/internal/repository"
)

var ErrExportGenerateFail = errors.New("failed to generate export file")

// ExportService file downloads for schedules and GPA history
//
//   - spreadsheets are returned as bytes.Buffer; the handler sets the download headers
//   - calendar export anchors weekly events on the configured term start
type ExportService interface {
	ScheduleWorkbook(ctx context.Context, caller Caller, scheduleID string) (*bytes.Buffer, string, error)
	ScheduleCalendar(ctx context.Context, caller Caller, scheduleID string) ([]byte, string, error)
	GPAHistoryWorkbook(ctx context.Context, caller Caller, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	calendar *config.CalendarConfig
	repo     *repository.Repository
	logger   *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(calendar *config.CalendarConfig, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{calendar: calendar, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ScheduleWorkbook
// ═══════════════════════════════════════════════════════════
//
// Layout:
//   - row 1: "<Semester> <Year> Schedule"
//   - row 2: Course Code | Title | Credits | Days | Time | Location
//   - one row per course, ordered by course code
//   - last row: total credits

func (s *exportService) ScheduleWorkbook(ctx context.Context, caller Caller, scheduleID string) (*bytes.Buffer, string, error) {
	schedule, err := loadOwnedSchedule(ctx, s.repo, s.logger, caller, scheduleID)
	if err != nil {
		return nil, "", err
	}

	courses, err := s.repo.Schedule.ListCourses(ctx, schedule.ScheduleID)
	if err != nil {
		s.logger.Error("failed to list schedule courses", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 9)
	f.SetColWidth(sheetName, "D", "D", 16)
	f.SetColWidth(sheetName, "E", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 16)

	headerStyle := headerCellStyle(f)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s %d Schedule", schedule.Semester, schedule.Year))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Course Code", "Title", "Credits", "Days", "Time", "Location"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "F2", headerStyle)

	row := 3
	var total float64
	for _, c := range courses {
		info := decodeScheduleInfo(c.ScheduleInfo)
		f.SetCellValue(sheetName, cell("A", row), c.CourseCode)
		f.SetCellValue(sheetName, cell("B", row), c.Title)
		f.SetCellValue(sheetName, cell("C", row), c.Credits)
		f.SetCellValue(sheetName, cell("D", row), strings.Join(info.Days, ", "))
		if info.Start != "" && info.End != "" {
			f.SetCellValue(sheetName, cell("E", row), info.Start+"-"+info.End)
		} else {
			f.SetCellValue(sheetName, cell("E", row), "TBA")
		}
		f.SetCellValue(sheetName, cell("F", row), info.Location)
		total += c.Credits
		row++
	}

	f.SetCellValue(sheetName, cell("A", row), "Total")
	f.SetCellValue(sheetName, cell("C", row), total)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s_%d.xlsx", strings.ToLower(schedule.Semester), schedule.Year)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// GPAHistoryWorkbook
// ═══════════════════════════════════════════════════════════

func (s *exportService) GPAHistoryWorkbook(ctx context.Context, caller Caller, userID string) (*bytes.Buffer, string, error) {
	if !caller.CanAccess(userID) {
		return nil, "", ErrForbidden
	}

	records, err := s.repo.GPA.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list gpa records", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "GPA History"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 8)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 22)

	headers := []string{"Semester", "Year", "GPA", "Credits", "Recorded At"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", "E1", headerCellStyle(f))

	row := 2
	for _, r := range records {
		f.SetCellValue(sheetName, cell("A", row), r.Semester)
		f.SetCellValue(sheetName, cell("B", row), r.Year)
		f.SetCellValue(sheetName, cell("C", row), r.GPA)
		f.SetCellValue(sheetName, cell("D", row), r.TotalCredits)
		f.SetCellValue(sheetName, cell("E", row), formatTime(r.RecordedAt))
		row++
	}

	cumulative, credits := CumulativeGPA(records)
	f.SetCellValue(sheetName, cell("A", row), "Cumulative")
	f.SetCellValue(sheetName, cell("C", row), FormatGPA(cumulative))
	f.SetCellValue(sheetName, cell("D", row), credits)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "gpa_history.xlsx", nil
}

// ── helpers ──

func headerCellStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#CEB888"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return style
}

// decodeScheduleInfo returns the zero value when the column is missing or not the usual shape
func decodeScheduleInfo(j model.JSON) model.ScheduleInfo {
	var info model.ScheduleInfo
	if err := j.Decode(&info); err != nil {
		return model.ScheduleInfo{}
	}
	return info
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
