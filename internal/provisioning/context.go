// Package provisioning converges the managed cloud resources of one
// deployment: the Cloud Run service and the gateway API chain. Each resource
// is fully replaced: deleted if present, confirmed gone, then recreated and
// polled until the provider reports it, where the kind supports that.
package provisioning

import (
	"context"

	"github.com/MarsLyceum/gcp-microservice-management/internal/config"
	"github.com/MarsLyceum/gcp-microservice-management/internal/platform/gcloud"
	"github.com/MarsLyceum/gcp-microservice-management/internal/ui"
)

// Context wraps all dependencies needed by a deployment phase.
type Context struct {
	context.Context
	Config   *config.Config
	Cloud    gcloud.Manager
	Notifier ui.Notifier
	Timeouts *config.Timeouts
}

// NewContext creates a deployment context with timeouts loaded from the
// environment.
func NewContext(ctx context.Context, cfg *config.Config, cloud gcloud.Manager, notifier ui.Notifier) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Cloud:    cloud,
		Notifier: notifier,
		Timeouts: config.LoadTimeouts(),
	}
}
