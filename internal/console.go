package internal

import (
	"blogd/internal/backup/interfaces"
	"blogd/internal/providers"
	"blogd/internal/services"
)

// Console bundles what the operator commands need without starting the
// HTTP server or the scheduler.
type Console struct {
	Service    services.BlogServiceInterface
	Logger     providers.Logger
	compressor interfaces.CompressorInterface
}

func (c *Console) Close() {
	c.compressor.Close()
	c.Logger.Close()
}

func NewConsole(service services.BlogServiceInterface, logger providers.Logger, compressor interfaces.CompressorInterface) *Console {
	return &Console{Service: service, Logger: logger, compressor: compressor}
}
