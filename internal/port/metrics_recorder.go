package port

type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
	OperationUpdate Operation = "update"
)

type Outcome string

const (
	OutcomeCommitted         Outcome = "committed"
	OutcomeNoop              Outcome = "noop"
	OutcomeInsufficientStock Outcome = "insufficient_stock"
	OutcomeUnavailable       Outcome = "product_unavailable"
	OutcomeNotInCart         Outcome = "not_in_cart"
	OutcomeGatewayError      Outcome = "gateway_error"
	OutcomeSnapshotError     Outcome = "snapshot_error"
	OutcomeInvalidState      Outcome = "invalid_state"
)

type MetricsRecorder interface {
	RecordOperation(op Operation, outcome Outcome)
}
