package eventstream

// Executor runs tasks submitted by the drain engine. Thread-pool management
// is out of scope — the executor is always injected by the caller.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(task func())

func (f ExecutorFunc) Execute(task func()) { f(task) }

// serialExecutor runs tasks one at a time, in submission order, on a single
// background goroutine. It is the executor this package provides (Config
// has no default Executor; callers pass one explicitly): a single serial
// worker is the simplest way to meet the module's ordering guarantees,
// since correctness does not depend on executor parallelism.
type serialExecutor struct {
	tasks chan func()
}

// NewSerialExecutor starts a single-goroutine serial executor. The
// background goroutine runs until the process exits; there is no Stop
// because the executor is meant to live for the lifetime of the process
// (or be discarded along with the Transformer that used it, in which case
// the goroutine parks forever on an empty channel — acceptable for the
// per-request-attempt lifetime this module targets).
func NewSerialExecutor() Executor {
	e := &serialExecutor{tasks: make(chan func(), 256)}
	go e.run()
	return e
}

func (e *serialExecutor) run() {
	for task := range e.tasks {
		task()
	}
}

func (e *serialExecutor) Execute(task func()) {
	e.tasks <- task
}
