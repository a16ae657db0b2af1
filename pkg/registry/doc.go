// Package registry stores normalized block and widget schemas together with
// their compiled attribute declarations and renders block instances on
// behalf of the host.
//
// A Registry is an explicit value: hosts construct one with New, populate it
// from their config sources and pass it to whatever renders blocks. Register
// and RenderInstance never return faults to the host; failures are logged
// and surface as false or an empty string respectively. Render and
// RegisterBlock expose the underlying errors for tooling.
package registry
