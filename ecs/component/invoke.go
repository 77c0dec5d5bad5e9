package component

// PendingInvoke is a named call scheduled to run after Delay seconds of frame
// time have accumulated.
type PendingInvoke struct {
	Method  string
	Delay   float64
	Elapsed float64
}

// Invoker holds the deferred calls of one entity.
type Invoker struct {
	Pending []PendingInvoke
}

var InvokerComponent = NewComponent[Invoker]()
