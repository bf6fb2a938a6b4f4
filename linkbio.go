package linkbio

import "github.com/zazjoe90-oss/go-linkbio/service"

// Re-export the service package entry point so consumers can do `linkbio.New(...)`
// without importing internal wiring helpers.
type (
	Service  = service.Service
	Config   = service.Config
	Commands = service.Commands
	Queries  = service.Queries
)

// New constructs the go-linkbio runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
