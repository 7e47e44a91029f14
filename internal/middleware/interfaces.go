package middleware

// RequestObserver receives one call per completed HTTP request.
// *infrastructure.Metrics implements it.
type RequestObserver interface {
	ObserveRequest(route string, code int)
}
