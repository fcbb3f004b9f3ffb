package ports

type CommandMetrics interface {
	RecordSuccess(command string)
	RecordRejection(command, code string)
	RecordConflict(command string)
	RecordFailure(command string)
}
