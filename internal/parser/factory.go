package parser

import (
	"github.com/rotisserie/eris"

	"billsight/internal/config"
	"billsight/internal/domain"
	"billsight/internal/port"
)

// ProviderFactory builds a DocumentParser for one model backend.
type ProviderFactory func(cfg *config.BedrockConfig, runtime port.ModelRuntime) (port.DocumentParser, error)

// registry of backend factories, populated by init() in each backend package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a backend factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewParser creates the DocumentParser for cfg.Backend using the registered factory.
func NewParser(cfg *config.BedrockConfig, runtime port.ModelRuntime) (port.DocumentParser, error) {
	factory, ok := providers[cfg.Backend]
	if !ok {
		return nil, eris.Wrapf(domain.ErrUnknownBackend, "backend %q", cfg.Backend)
	}
	return factory(cfg, runtime)
}
