// Package bootstrap wires the configured pieces of the client together:
// file-backed auth state, the API client and the session on top of it.
package bootstrap

import (
	"go.uber.org/zap"

	"AtlasAdmin/internal/cli/api"
	"AtlasAdmin/internal/cli/repo/fs"
	"AtlasAdmin/internal/cli/session"
	"AtlasAdmin/internal/config"
)

// Session builds the API client and session store from the config.
// The session's authenticated flag is resynchronized from the persisted
// token before the first command touches the network.
func Session(cfg *config.Config) (*api.Client, *session.Session) {
	authfs := fs.New(cfg.TokenFile, cfg.SessionFile)

	var opts []api.Option
	if cfg.Verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			opts = append(opts, api.WithLogger(logger))
		}
	}

	client := api.New(cfg.APIBaseURL, authfs, authfs.States(), opts...)
	sess := session.New(client, authfs, authfs.States())
	sess.CheckAuth()
	return client, sess
}
