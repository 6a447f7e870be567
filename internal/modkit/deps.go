package modkit

import (
	"meetgrid/internal/modkit/repokit"
	"meetgrid/internal/platform/config"
	"meetgrid/internal/platform/logger"
)

// Deps are the shared dependencies handed to every module constructor
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
