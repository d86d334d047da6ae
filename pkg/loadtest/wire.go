//go:build wireinject
// +build wireinject

package loadtest

import (
	"github.com/google/wire"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config"
)

func InitializeRunner(conf *config.Config) (*Runner, error) {
	wire.Build(LoadTestSet)
	return &Runner{}, nil
}
