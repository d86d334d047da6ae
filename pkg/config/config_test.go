package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config/configtest"
	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy"
)

func TestConfig_Defaults(t *testing.T) {
	conf, err := NewConfig("", true, nil, nil)
	require.NoError(t, err)

	require.Equal(t, 1, conf.NumClients)
	require.Equal(t, 100*time.Millisecond, conf.ClientInterval)
	require.Equal(t, lastn.Unlimited, conf.Policy.ChannelLastN)
	require.Equal(t, policy.DefaultHeightConfig, conf.Video.HeightConfig)
	require.Equal(t, 2*time.Second, conf.Media.UnmuteDelay)
	require.True(t, conf.Media.LocalVideo)
	require.False(t, conf.Media.RemoteVideo)
}

func TestConfig_DefaultsKept(t *testing.T) {
	const content = `num_clients: 3
video:
  low: 90`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, conf.NumClients)
	require.Equal(t, int32(90), conf.Video.Low)
	require.Equal(t, int32(720), conf.Video.High)
	require.Equal(t, 100*time.Millisecond, conf.ClientInterval)
}

func TestConfig_UnknownKeys(t *testing.T) {
	const content = `unknown: 10
num_clients: 3`
	_, err := NewConfig(content, true, nil, nil)
	require.Error(t, err)

	conf, err := NewConfig(content, false, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, conf.NumClients)
}

func TestConfig_Policy(t *testing.T) {
	const content = `client_interval: 250ms
policy:
  channel_last_n: 3
  stage_view: true
  last_n_limits:
    - max_participants: 4
      last_n: 20
    - last_n: 5`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, conf.ClientInterval)

	pc := conf.PolicyConfig()
	require.Equal(t, int32(3), pc.ConfiguredLastN)
	require.True(t, pc.StageView)
	require.Equal(t, []lastn.Tier{{MaxParticipants: 4, LastN: 20}, {LastN: 5}}, pc.LastNTiers)
	require.Equal(t, policy.DefaultHeightConfig, pc.Heights)
}

func TestConfig_Invalid(t *testing.T) {
	for name, content := range map[string]string{
		"unsorted tiers": `policy:
  last_n_limits:
    - max_participants: 10
      last_n: 1
    - max_participants: 5
      last_n: 2`,
		"catch-all not last": `policy:
  last_n_limits:
    - last_n: 1
    - max_participants: 5
      last_n: 2`,
		"lastN below unlimited": `policy:
  channel_last_n: -2`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewConfig(content, true, nil, nil)
			require.ErrorIs(t, err, lastn.ErrConfiguration)
		})
	}

	_, err := NewConfig("num_clients: -1", true, nil, nil)
	require.ErrorIs(t, err, ErrInvalidNumClients)
}

func TestConfig_YAMLTags(t *testing.T) {
	require.NoError(t, configtest.CheckYAMLTags(Config{}, logger.Config{}))
}

func TestGeneratedFlags(t *testing.T) {
	generatedFlags, err := GenerateCLIFlags(nil, false)
	require.NoError(t, err)

	app := cli.NewApp()
	app.Flags = append(app.Flags, generatedFlags...)

	set := flag.NewFlagSet("test", 0)
	set.Bool("policy.stage_view", false, "")      // bool
	set.String("room", "", "")                    // string
	set.Int("num_clients", 0, "")                 // int
	set.Int("policy.channel_last_n", 0, "")       // int32
	set.Uint("prometheus_port", 0, "")            // uint32
	set.Duration("client_interval", 0, "")        // duration
	set.Int("video.stage", 0, "")                 // inline
	require.NoError(t, set.Parse([]string{
		"--policy.stage_view",
		"--room=perf",
		"--num_clients=5",
		"--policy.channel_last_n=8",
		"--prometheus_port=9999",
		"--client_interval=2s",
		"--video.stage=1080",
	}))

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)

	require.True(t, conf.Policy.StageView)
	require.Equal(t, "perf", conf.Room)
	require.Equal(t, 5, conf.NumClients)
	require.Equal(t, int32(8), conf.Policy.ChannelLastN)
	require.Equal(t, uint32(9999), conf.PrometheusPort)
	require.Equal(t, 2*time.Second, conf.ClientInterval)
	require.Equal(t, int32(1080), conf.Video.Stage)
	// untouched
	require.Equal(t, int32(720), conf.Video.High)
}

func TestURLFlag(t *testing.T) {
	app := cli.NewApp()
	app.Flags = []cli.Flag{&cli.StringFlag{Name: "url"}}

	set := flag.NewFlagSet("test", 0)
	set.String("url", "", "")
	require.NoError(t, set.Parse([]string{"--url=https://meet.example.com/loadtest#numClients=4&stageView=true"}))

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, app.Flags)
	require.NoError(t, err)
	require.Equal(t, 4, conf.NumClients)
	require.True(t, conf.Policy.StageView)
}

func TestDevFlag(t *testing.T) {
	app := cli.NewApp()
	app.Flags = []cli.Flag{&cli.BoolFlag{Name: "dev"}}

	set := flag.NewFlagSet("test", 0)
	set.Bool("dev", false, "")
	require.NoError(t, set.Parse([]string{"--dev"}))

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, app.Flags)
	require.NoError(t, err)
	require.True(t, conf.Development)
	require.Equal(t, "debug", conf.Logging.Level)
	InitLoggerFromConfig(&conf.Logging)

	// an explicit level wins
	conf, err = NewConfig("logging:\n  level: warn\n", true, c, app.Flags)
	require.NoError(t, err)
	require.Equal(t, "warn", conf.Logging.Level)
}
