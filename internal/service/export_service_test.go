package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
	"github.com/shiftline/rota-api/pkg/jobs"
	"github.com/shiftline/rota-api/pkg/storage"
)

type exportRepoStub struct {
	records map[string]*models.ScheduleExport
}

func newExportRepoStub() *exportRepoStub {
	return &exportRepoStub{records: make(map[string]*models.ScheduleExport)}
}

func (s *exportRepoStub) Create(ctx context.Context, job *models.ScheduleExport) error {
	job.ID = "exp-1"
	s.records[job.ID] = job
	return nil
}

func (s *exportRepoStub) FindByID(ctx context.Context, id string) (*models.ScheduleExport, error) {
	record, ok := s.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return record, nil
}

func (s *exportRepoStub) MarkProcessing(ctx context.Context, id string) error {
	s.records[id].Status = models.ExportStatusProcessing
	return nil
}

func (s *exportRepoStub) MarkFinished(ctx context.Context, id, filePath string) error {
	s.records[id].Status = models.ExportStatusFinished
	s.records[id].FilePath = &filePath
	return nil
}

func (s *exportRepoStub) MarkFailed(ctx context.Context, id, reason string) error {
	s.records[id].Status = models.ExportStatusFailed
	s.records[id].Error = &reason
	return nil
}

func (s *exportRepoStub) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleExport, error) {
	var out []models.ScheduleExport
	for _, record := range s.records {
		out = append(out, *record)
	}
	return out, nil
}

type memoryQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *memoryQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newExportService(t *testing.T, repo *exportRepoStub, shifts []models.ShiftDetail) (*ExportService, *memoryQueue, fileStorage) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(repo,
		scheduleByIDStub{schedule: weekOfMarch2()},
		&shiftStoreStub{listed: shifts},
		store, signer, ExportConfig{APIPrefix: "/api/v1"}, nil, nil)
	queue := &memoryQueue{}
	svc.SetQueue(queue)
	return svc, queue, store
}

func sampleShiftDetails() []models.ShiftDetail {
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return []models.ShiftDetail{{
		Shift: models.Shift{
			ID:         "sh-1",
			ScheduleID: "sched-1",
			EmployeeID: "e1",
			StartTime:  weekStart.Add(9 * time.Hour),
			EndTime:    weekStart.Add(17 * time.Hour),
			Status:     models.ShiftStatusApproved,
		},
		EmployeeName: "Ana",
	}}
}

func TestExportServiceRequestQueuesJob(t *testing.T) {
	repo := newExportRepoStub()
	svc, queue, _ := newExportService(t, repo, sampleShiftDetails())

	resp, err := svc.Request(context.Background(), "sched-1", "mgr-1", dto.CreateExportRequest{Format: "CSV"})
	require.NoError(t, err)
	assert.Equal(t, "exp-1", resp.ID)
	assert.Equal(t, string(models.ExportStatusQueued), resp.Status)
	assert.Empty(t, resp.DownloadURL)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, "schedule_export", queue.jobs[0].Type)
}

func TestExportServiceRequestRejectsUnknownFormat(t *testing.T) {
	svc, _, _ := newExportService(t, newExportRepoStub(), nil)

	_, err := svc.Request(context.Background(), "sched-1", "mgr-1", dto.CreateExportRequest{Format: "XLSX"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceProcessRendersCSV(t *testing.T) {
	repo := newExportRepoStub()
	svc, queue, store := newExportService(t, repo, sampleShiftDetails())

	_, err := svc.Request(context.Background(), "sched-1", "mgr-1", dto.CreateExportRequest{Format: "CSV"})
	require.NoError(t, err)

	require.NoError(t, svc.Process(context.Background(), queue.jobs[0]))

	record := repo.records["exp-1"]
	assert.Equal(t, models.ExportStatusFinished, record.Status)
	require.NotNil(t, record.FilePath)

	file, err := store.Open(*record.FilePath)
	require.NoError(t, err)
	defer file.Close()
	buf := make([]byte, 4096)
	n, _ := file.Read(buf)
	content := string(buf[:n])
	assert.True(t, strings.HasPrefix(content, "Day,Date,Employee,Start,End,Status"))
	assert.Contains(t, content, "Monday,2026-03-02,Ana,09:00,17:00,Approved")
}

func TestExportServiceProcessRendersPDF(t *testing.T) {
	repo := newExportRepoStub()
	svc, queue, _ := newExportService(t, repo, sampleShiftDetails())

	_, err := svc.Request(context.Background(), "sched-1", "mgr-1", dto.CreateExportRequest{Format: "PDF"})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), queue.jobs[0]))
	assert.Equal(t, models.ExportStatusFinished, repo.records["exp-1"].Status)
}

func TestExportServiceStatusSignsFinishedDownloads(t *testing.T) {
	repo := newExportRepoStub()
	svc, queue, _ := newExportService(t, repo, sampleShiftDetails())

	_, err := svc.Request(context.Background(), "sched-1", "mgr-1", dto.CreateExportRequest{Format: "CSV"})
	require.NoError(t, err)
	require.NoError(t, svc.Process(context.Background(), queue.jobs[0]))

	resp, err := svc.Status(context.Background(), "exp-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.ExportStatusFinished), resp.Status)
	require.NotEmpty(t, resp.DownloadURL)
	assert.True(t, strings.HasPrefix(resp.DownloadURL, "/api/v1/downloads/"))

	token := strings.TrimPrefix(resp.DownloadURL, "/api/v1/downloads/")
	exportID, relPath, _, err := svc.ParseToken(token, false)
	require.NoError(t, err)
	assert.Equal(t, "exp-1", exportID)
	assert.Equal(t, *repo.records["exp-1"].FilePath, relPath)
}

func TestExportServiceRequestQueueFull(t *testing.T) {
	repo := newExportRepoStub()
	svc, queue, _ := newExportService(t, repo, nil)
	queue.err = assert.AnError

	_, err := svc.Request(context.Background(), "sched-1", "mgr-1", dto.CreateExportRequest{Format: "CSV"})
	require.Error(t, err)
	assert.Equal(t, models.ExportStatusFailed, repo.records["exp-1"].Status)
}
