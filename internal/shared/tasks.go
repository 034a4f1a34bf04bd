package shared

// Asynq task types
const (
	TypeSyncOverdueLoans = "loan:sync_overdue"
)

// Asynq queue names
const (
	QueueDefault = "default"
	QueueLow     = "low"
)
