package loadtest

import (
	"github.com/google/wire"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config"
	"github.com/jitsi/jitsi-meet-load-test/pkg/simulation"
)

var LoadTestSet = wire.NewSet(
	createRoom,
	NewRunner,
)

func createRoom(conf *config.Config) *simulation.Room {
	return simulation.NewRoom(simulation.RoomParams{
		Name:                conf.Room,
		SpeakerInterval:     conf.Simulation.SpeakerInterval,
		DataChannelDelay:    conf.Simulation.DataChannelDelay,
		PublishWorkers:      conf.Simulation.PublishWorkers,
		StartAudioMuted:     conf.Media.StartAudioMuted,
		StartVideoMuted:     conf.Media.StartVideoMuted,
		MaxMainParticipants: conf.Simulation.MaxMainParticipants,
		Logger:              logger.GetLogger(),
	})
}
