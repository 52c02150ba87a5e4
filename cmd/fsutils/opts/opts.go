package opts

import (
	"github.com/cons0leweb/fsutils/pkg/config"
	"github.com/cons0leweb/fsutils/pkg/oplog"
)

// RootOpts contains shared options used by all commands. The root command
// populates it in its persistent pre-run, after flags are parsed.
type RootOpts struct {
	Config     *config.Config
	ConfigPath string
	Sink       *oplog.Sink
}
