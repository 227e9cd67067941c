package misc

// Nothing is the placeholder argument/reply for RPC methods that need
// neither.
type Nothing struct{}
