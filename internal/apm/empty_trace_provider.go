package apm

// emptyTraceProvider is the no-op fallback used when telemetry is
// disabled or no exporter could be configured.
type emptyTraceProvider struct{}

func NewEmptyTraceProvider() TraceProvider {
	return emptyTraceProvider{}
}

func (emptyTraceProvider) Stop() error {
	return nil
}
