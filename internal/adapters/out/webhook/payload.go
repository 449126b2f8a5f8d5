package webhook

import (
	"time"

	"github.com/bnema/snapdb/internal/domain"
)

// Payload is the JSON document posted for every completed run.
type Payload struct {
	Status              string   `json:"status"`
	Message             string   `json:"message"`
	StartedAt           string   `json:"startedAt"`
	FinishedAt          string   `json:"finishedAt"`
	DurationSeconds     int64    `json:"durationSeconds"`
	Repository          string   `json:"repository"`
	DBType              string   `json:"dbType"`
	Host                string   `json:"host"`
	Tags                []string `json:"tags"`
	SnapshotID          *string  `json:"snapshotId"`
	DataAddedBytes      int64    `json:"dataAddedBytes"`
	TotalBytesProcessed int64    `json:"totalBytesProcessed"`
	TotalDuration       int64    `json:"totalDurationSeconds"`
	FilesNew            int64    `json:"filesNew"`
	FilesChanged        int64    `json:"filesChanged"`
	FilesUnmodified     int64    `json:"filesUnmodified"`
}

// NewPayload flattens a run report. An empty snapshot id is encoded as null.
func NewPayload(report domain.RunReport) Payload {
	tags := report.Tags
	if tags == nil {
		tags = []string{}
	}

	var snapshotID *string
	if id := report.Summary.SnapshotID; id != "" {
		snapshotID = &id
	}

	return Payload{
		Status:              string(report.Status),
		Message:             report.Message,
		StartedAt:           formatTime(report.StartedAt),
		FinishedAt:          formatTime(report.FinishedAt),
		DurationSeconds:     report.DurationSeconds(),
		Repository:          report.Repository,
		DBType:              report.Engine.String(),
		Host:                report.Host,
		Tags:                tags,
		SnapshotID:          snapshotID,
		DataAddedBytes:      report.Summary.DataAdded,
		TotalBytesProcessed: report.Summary.TotalBytesProcessed,
		TotalDuration:       report.Summary.TotalDurationSeconds,
		FilesNew:            report.Summary.FilesNew,
		FilesChanged:        report.Summary.FilesChanged,
		FilesUnmodified:     report.Summary.FilesUnmodified,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
