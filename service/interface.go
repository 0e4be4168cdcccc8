package service

// Service is a long-lived subsystem owned by a Hub: the audio output and the landmark bridge
//
// The hub calls Init on every service in dependency order, then Start in the same order,
// and Stop in reverse. A service that cannot reach its resource (no audio device, empty
// bridge address) reports itself disabled instead of failing Init
type Service interface {
	// Name is the key used in Hub.InitAll args and Hub.Get
	Name() string

	// Dependencies names services that must Init and Start first; nil for none
	Dependencies() []string

	// Init receives the positional args registered for this service's name
	Init(args ...any) error

	// Start launches background work once every service has initialized
	Start() error

	// Stop releases resources; calling it twice is safe
	Stop() error
}
