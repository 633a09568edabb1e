package contextkeys

// RequestId keys the per-request correlation id in a context.
type RequestId struct{}
