package outbound

// TaskDispatcher hands work to the shared worker pool. Satisfied by
// *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
