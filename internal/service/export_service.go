package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/model"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/repository"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/stats"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/calendar"
	apperrors "github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/errors"
)

// ── Export errors ──

var (
	ErrExportGenerateFail = errors.New("generate export file failed")
)

// ExportService journal exports. Files are returned as bytes; the handler
// sets the download headers.
type ExportService interface {
	// ExportJournal workbook with a summary sheet and one sheet per placement
	ExportJournal(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportStagesICS placements as all-day iCalendar events
	ExportStagesICS(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportJournal
// ═══════════════════════════════════════════════════════════
//
// Sheets:
//   - "Synthèse": one row per placement with its mood counts
//   - one sheet per placement: date, mood, activities, reflections, lessons

const summarySheet = "Synthèse"

func (s *exportService) ExportJournal(ctx context.Context) (*bytes.Buffer, string, error) {
	stages, notes, err := fetchSnapshot(ctx, s.repo)
	if err != nil {
		s.logger.Error("fetch journal snapshot failed", zap.Error(err))
		return nil, "", apperrors.Store(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		s.logger.Error("create summary sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		s.logger.Error("create header style failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		s.logger.Error("create wrap style failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	// summary header
	header := []string{"Stage", "Modalité", "Début", "Fin", "Jours ouvrés", "Jours renseignés"}
	for _, m := range model.Moods {
		header = append(header, m.Emoji()+" "+m.Label())
	}
	writeRow(f, summarySheet, 1, header)
	lastCol := colName(len(header) - 1)
	f.SetCellStyle(summarySheet, "A1", cell(lastCol, 1), headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 32)
	f.SetColWidth(summarySheet, "B", lastCol, 16)

	used := make(map[string]bool, len(stages)+1)
	used[strings.ToLower(summarySheet)] = true

	for i := range stages {
		st := stats.ForStage(stages[i], notes)

		row := []string{
			stages[i].Name,
			stages[i].Modality.Label(),
			stages[i].StartDate.Format(calendar.DateLayout),
			stages[i].EndDate.Format(calendar.DateLayout),
			fmt.Sprint(stages[i].WorkingDays),
			fmt.Sprintf("%d / %d", st.LoggedDays, st.TotalDays),
		}
		for _, m := range model.Moods {
			row = append(row, fmt.Sprintf("%d (%d%%)", st.Breakdown.Count(m), st.Breakdown.Percentage(m)))
		}
		writeRow(f, summarySheet, i+2, row)

		// one sheet per placement
		name := uniqueSheetName(stages[i].Name, used)
		if _, err := f.NewSheet(name); err != nil {
			s.logger.Error("create sheet failed", zap.String("sheet", name), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		writeRow(f, name, 1, []string{"Date", "Humeur", "Actes réalisés", "Réflexions", "Apprentissages"})
		f.SetCellStyle(name, "A1", "E1", headerStyle)
		f.SetColWidth(name, "A", "B", 14)
		f.SetColWidth(name, "C", "E", 48)

		own := stats.EntriesForStage(notes, stages[i].StageID)
		for j, n := range own {
			r := j + 2
			writeRow(f, name, r, []string{
				n.Date.Format(calendar.DateLayout),
				n.Mood.Emoji() + " " + n.Mood.Label(),
				n.Activities,
				n.Reflections,
				n.Lessons,
			})
			f.SetCellStyle(name, cell("C", r), cell("E", r), wrapStyle)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("journal_de_stage_%s.xlsx", s.now().Format(calendar.DateLayout))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportStagesICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStagesICS(ctx context.Context) ([]byte, string, error) {
	stages, err := s.repo.Stage.List(ctx, "")
	if err != nil {
		s.logger.Error("list stages failed", zap.Error(err))
		return nil, "", apperrors.Store(err)
	}

	now := s.now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Mon journal de stage//FR")
	cal.SetXWRCalName("Stages")

	for i := range stages {
		st := &stages[i]
		evt := cal.AddEvent(fmt.Sprintf("stage-%d@journal-de-stage", st.StageID))
		evt.SetDtStampTime(now)
		evt.SetSummary(strings.TrimSpace(st.Emoji + " " + st.Name))
		// DTEND is exclusive for all-day events
		evt.SetAllDayStartAt(st.StartDate)
		evt.SetAllDayEndAt(st.EndDate.AddDate(0, 0, 1))
		if st.Location != "" {
			evt.SetLocation(st.Location)
		}
		evt.SetDescription(stageDescription(st))
	}

	return []byte(cal.Serialize()), "stages.ics", nil
}

func stageDescription(st *model.Stage) string {
	lines := []string{
		"Modalité : " + st.Modality.Label(),
		fmt.Sprintf("Jours ouvrés : %d", st.WorkingDays),
	}
	if st.Supervisor != "" {
		lines = append(lines, "Tuteur : "+st.Supervisor)
	}
	if st.Manager != "" {
		lines = append(lines, "Cadre : "+st.Manager)
	}
	return strings.Join(lines, "\n")
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func writeRow(f *excelize.File, sheet string, row int, values []string) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

// uniqueSheetName makes name a valid, unused worksheet name. Sheet names
// compare case-insensitively, so used is keyed by the lowered name.
func uniqueSheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, name)
	clean = trimSheetName(truncateRunes(trimSheetName(clean), 31))
	if clean == "" {
		clean = "Stage"
	}

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = trimSheetName(truncateRunes(clean, 31-utf8.RuneCountInString(suffix))) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// trimSheetName drops surrounding blanks and apostrophes, which excelize rejects
func trimSheetName(s string) string {
	return strings.Trim(s, " '")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
