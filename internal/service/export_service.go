package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
	"github.com/shiftline/rota-api/pkg/export"
	"github.com/shiftline/rota-api/pkg/jobs"
	"github.com/shiftline/rota-api/pkg/storage"
)

type exportRepository interface {
	Create(ctx context.Context, job *models.ScheduleExport) error
	FindByID(ctx context.Context, id string) (*models.ScheduleExport, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkFinished(ctx context.Context, id, filePath string) error
	MarkFailed(ctx context.Context, id, reason string) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleExport, error)
}

type exportScheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

type exportShiftReader interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ShiftDetail, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, dayColumn string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportService runs asynchronous schedule exports: a request queues a job,
// a worker renders the file, and the status endpoint hands out a signed
// download URL once the file exists.
type ExportService struct {
	repo      exportRepository
	schedules exportScheduleReader
	shifts    exportShiftReader
	storage   fileStorage
	queue     jobQueue
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService. SetQueue must be called
// before the first Request; the queue handler is this service's Process.
func NewExportService(repo exportRepository, schedules exportScheduleReader, shifts exportShiftReader, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		repo:      repo,
		schedules: schedules,
		shifts:    shifts,
		storage:   store,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		signer:    signer,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// SetQueue attaches the worker queue. Separate from the constructor because
// the queue's handler is this service's Process method.
func (s *ExportService) SetQueue(queue jobQueue) {
	s.queue = queue
}

// Request queues a new export job for a schedule.
func (s *ExportService) Request(ctx context.Context, scheduleID, requestedBy string, req dto.CreateExportRequest) (*dto.ExportStatusResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	if _, err := s.schedules.FindByID(ctx, scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	job := &models.ScheduleExport{
		ScheduleID:  scheduleID,
		Format:      models.ExportFormat(req.Format),
		Status:      models.ExportStatusQueued,
		RequestedBy: requestedBy,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export job")
	}

	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export worker is not running")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "schedule_export", Payload: job.ID}); err != nil {
		if markErr := s.repo.MarkFailed(ctx, job.ID, "queue full"); markErr != nil {
			s.logger.Warn("failed to mark export job failed", zap.String("export_id", job.ID), zap.Error(markErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}

	s.logger.Info("export queued",
		zap.String("export_id", job.ID),
		zap.String("schedule_id", scheduleID),
		zap.String("format", req.Format))
	return s.statusResponse(job), nil
}

// Process is the queue handler: it renders the export file and records the
// outcome on the job row.
func (s *ExportService) Process(ctx context.Context, job jobs.Job) error {
	exportID, ok := job.Payload.(string)
	if !ok || exportID == "" {
		return fmt.Errorf("export job %s: payload is not an export id", job.ID)
	}
	record, err := s.repo.FindByID(ctx, exportID)
	if err != nil {
		return fmt.Errorf("load export %s: %w", exportID, err)
	}
	if err := s.repo.MarkProcessing(ctx, exportID); err != nil {
		return fmt.Errorf("mark export %s processing: %w", exportID, err)
	}

	relPath, err := s.render(ctx, record)
	if err != nil {
		if markErr := s.repo.MarkFailed(ctx, exportID, err.Error()); markErr != nil {
			s.logger.Warn("failed to mark export job failed", zap.String("export_id", exportID), zap.Error(markErr))
		}
		return err
	}
	if err := s.repo.MarkFinished(ctx, exportID, relPath); err != nil {
		return fmt.Errorf("mark export %s finished: %w", exportID, err)
	}
	s.logger.Info("export finished", zap.String("export_id", exportID), zap.String("file", relPath))
	return nil
}

// Status reports the state of an export job. Finished jobs carry a signed
// download URL.
func (s *ExportService) Status(ctx context.Context, id string) (*dto.ExportStatusResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export")
	}
	return s.statusResponse(record), nil
}

// ListBySchedule returns the export history of a schedule.
func (s *ExportService) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleExport, error) {
	records, err := s.repo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exports")
	}
	return records, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to a stored export file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL
// when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) statusResponse(record *models.ScheduleExport) *dto.ExportStatusResponse {
	resp := &dto.ExportStatusResponse{
		ID:         record.ID,
		ScheduleID: record.ScheduleID,
		Format:     string(record.Format),
		Status:     string(record.Status),
	}
	if record.Error != nil {
		resp.Error = *record.Error
	}
	if record.Status == models.ExportStatusFinished && record.FilePath != nil {
		token, _, err := s.signer.Generate(record.ID, *record.FilePath)
		if err != nil {
			s.logger.Warn("failed to sign download url", zap.String("export_id", record.ID), zap.Error(err))
		} else {
			prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
			if prefix == "" {
				prefix = "/api/v1"
			}
			resp.DownloadURL = fmt.Sprintf("%s/downloads/%s", prefix, token)
		}
	}
	return resp
}

// render builds the schedule dataset and writes the rendered file.
func (s *ExportService) render(ctx context.Context, record *models.ScheduleExport) (string, error) {
	schedule, err := s.schedules.FindByID(ctx, record.ScheduleID)
	if err != nil {
		return "", fmt.Errorf("load schedule %s: %w", record.ScheduleID, err)
	}
	shifts, err := s.shifts.ListBySchedule(ctx, record.ScheduleID)
	if err != nil {
		return "", fmt.Errorf("load shifts for %s: %w", record.ScheduleID, err)
	}

	dataset := scheduleDataset(schedule, shifts)
	title := fmt.Sprintf("Schedule week of %s", schedule.WeekStart.Format("2006-01-02"))

	var payload []byte
	switch record.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title, "Day")
	default:
		err = fmt.Errorf("unsupported format %s", record.Format)
	}
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("schedule_%s_%s.%s",
		schedule.WeekStart.Format("20060102"),
		time.Now().UTC().Format("150405"),
		strings.ToLower(string(record.Format)))
	return s.storage.Save(filename, payload)
}

// scheduleDataset flattens a schedule's shifts into the tabular form the
// renderers consume, one row per shift ordered as stored.
func scheduleDataset(schedule *models.Schedule, shifts []models.ShiftDetail) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Day", "Date", "Employee", "Start", "End", "Status"},
	}
	for _, sh := range shifts {
		day := int(sh.StartTime.Sub(schedule.WeekStart).Hours()) / 24
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":      dayName(day),
			"Date":     sh.StartTime.Format("2006-01-02"),
			"Employee": sh.EmployeeName,
			"Start":    sh.StartTime.Format("15:04"),
			"End":      sh.EndTime.Format("15:04"),
			"Status":   string(sh.Status),
		})
	}
	return dataset
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func dayName(day int) string {
	if day < 0 || day > 6 {
		return "?"
	}
	return dayNames[day]
}
