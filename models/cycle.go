package models

import "time"

// CycleResult is the outcome recorded for a finished sync cycle.
type CycleResult string

const (
	CycleSucceeded CycleResult = "ok"
	CycleFailed    CycleResult = "failed"
)

// CycleRecord is one row of the sync history kept next to the anchors.
type CycleRecord struct {
	CycleID     string      `json:"cycle_id"`
	ObjectClass string      `json:"object_class"`
	Kind        SessionKind `json:"kind,omitempty"`
	Result      CycleResult `json:"result"`
	ErrorKind   ErrorKind   `json:"error_kind,omitempty"`
	Message     string      `json:"message,omitempty"`
	Events      int         `json:"events"`
	Chunks      int         `json:"chunks"`
	StartedAt   time.Time   `json:"started_at"`
	FinishedAt  time.Time   `json:"finished_at"`
}

// SucceededCycle builds the history record of a successful cycle.
func SucceededCycle(report SyncReport) CycleRecord {
	return CycleRecord{
		CycleID:     report.CycleID,
		ObjectClass: report.ObjectClass,
		Kind:        report.Kind,
		Result:      CycleSucceeded,
		Events:      report.Events,
		Chunks:      report.Chunks,
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
	}
}

// FailedCycle builds the history record of a cycle that ended with err.
// report carries whatever progress was made before the failure.
func FailedCycle(report SyncReport, err error) CycleRecord {
	record := SucceededCycle(report)
	record.Result = CycleFailed
	record.ErrorKind = KindOf(err)
	if err != nil {
		record.Message = err.Error()
	}
	return record
}
