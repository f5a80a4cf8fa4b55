package dto

// CreateExportRequest queues an async export of a schedule.
type CreateExportRequest struct {
	Format string `json:"format" validate:"required,oneof=CSV PDF"`
}

// ExportStatusResponse reports the current state of an export job, including
// a signed download URL once the file is ready.
type ExportStatusResponse struct {
	ID          string `json:"id"`
	ScheduleID  string `json:"scheduleId"`
	Format      string `json:"format"`
	Status      string `json:"status"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Error       string `json:"error,omitempty"`
}
