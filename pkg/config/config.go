// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/policy"
)

const (
	generatedCLIFlagUsage = "generated"

	envVarPrefix = "JITSI_LOAD_TEST"
)

var (
	ErrInvalidNumClients     = errors.New("num_clients must not be negative")
	ErrInvalidClientInterval = errors.New("client_interval must not be negative")
	ErrInvalidHeights        = errors.New("video heights must be positive")

	durationType = reflect.TypeOf(time.Duration(0))
)

type Config struct {
	Room           string           `yaml:"room,omitempty"`
	NumClients     int              `yaml:"num_clients,omitempty"`
	ClientInterval time.Duration    `yaml:"client_interval,omitempty"`
	Duration       time.Duration    `yaml:"duration,omitempty"`
	PrometheusPort uint32           `yaml:"prometheus_port,omitempty"`
	Environment    string           `yaml:"environment,omitempty"`
	Policy         PolicyConfig     `yaml:"policy,omitempty"`
	Video          VideoConfig      `yaml:"video,omitempty"`
	Media          MediaConfig      `yaml:"media,omitempty"`
	Simulation     SimulationConfig `yaml:"simulation,omitempty"`
	Logging        LoggingConfig    `yaml:"logging,omitempty"`
	// written by the run command when set
	SummaryFile string `yaml:"summary_file,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type PolicyConfig struct {
	// lastn.Unlimited when not limited
	ChannelLastN int32        `yaml:"channel_last_n,omitempty"`
	LastNLimits  []lastn.Tier `yaml:"last_n_limits,omitempty"`
	StageView    bool         `yaml:"stage_view,omitempty"`
}

type VideoConfig struct {
	policy.HeightConfig `yaml:",inline"`
}

type MediaConfig struct {
	LocalVideo  bool `yaml:"local_video,omitempty"`
	LocalAudio  bool `yaml:"local_audio,omitempty"`
	// receive remote tracks of the kind
	RemoteVideo bool `yaml:"remote_video,omitempty"`
	RemoteAudio bool `yaml:"remote_audio,omitempty"`
	// conference wide start muted policy, applied by the room
	StartAudioMuted bool `yaml:"start_audio_muted,omitempty"`
	StartVideoMuted bool `yaml:"start_video_muted,omitempty"`
	// wait before undoing a start muted policy
	UnmuteDelay time.Duration `yaml:"unmute_delay,omitempty"`
}

type SimulationConfig struct {
	SpeakerInterval  time.Duration `yaml:"speaker_interval,omitempty"`
	DataChannelDelay time.Duration `yaml:"data_channel_delay,omitempty"`
	PublishWorkers   int           `yaml:"publish_workers,omitempty"`
	// clients beyond this many main participants are redirected to visitor mode, 0 disables visitors
	MaxMainParticipants int `yaml:"max_main_participants,omitempty"`
}

type LoggingConfig struct {
	logger.Config `yaml:",inline"`
}

var DefaultConfig = Config{
	Room:           "loadtest",
	NumClients:     1,
	ClientInterval: 100 * time.Millisecond,
	Environment:    "dev",
	Policy: PolicyConfig{
		ChannelLastN: lastn.Unlimited,
	},
	Video: VideoConfig{
		HeightConfig: policy.DefaultHeightConfig,
	},
	Media: MediaConfig{
		LocalVideo:  true,
		LocalAudio:  true,
		UnmuteDelay: 2 * time.Second,
	},
	Simulation: SimulationConfig{
		SpeakerInterval:  3 * time.Second,
		DataChannelDelay: 50 * time.Millisecond,
		PublishWorkers:   4,
	},
}

func NewConfig(confString string, strictMode bool, c *cli.Context, baseFlags []cli.Flag) (*Config, error) {
	// start with defaults
	marshalled, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = yaml.Unmarshal(marshalled, &conf)
	if err != nil {
		return nil, err
	}

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c, baseFlags); err != nil {
			return nil, err
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "could not validate config")
	}

	// expand env vars in filenames
	if conf.SummaryFile != "" {
		file, err := homedir.Expand(os.ExpandEnv(conf.SummaryFile))
		if err != nil {
			return nil, err
		}
		conf.SummaryFile = file
	}

	if conf.Logging.Level == "" && conf.Development {
		conf.Logging.Level = "debug"
	}

	return &conf, nil
}

func (conf *Config) Validate() error {
	if err := lastn.ValidateTiers(conf.Policy.LastNLimits); err != nil {
		return err
	}
	if conf.Policy.ChannelLastN < lastn.Unlimited {
		return errors.Wrapf(lastn.ErrConfiguration, "channel_last_n %d is below %d", conf.Policy.ChannelLastN, lastn.Unlimited)
	}
	if conf.NumClients < 0 {
		return ErrInvalidNumClients
	}
	if conf.ClientInterval < 0 {
		return ErrInvalidClientInterval
	}
	h := conf.Video.HeightConfig
	if h.High <= 0 || h.Medium <= 0 || h.Low <= 0 || h.Stage <= 0 {
		return ErrInvalidHeights
	}
	return nil
}

// PolicyConfig returns the driver configuration of a single client.
func (conf *Config) PolicyConfig() policy.Config {
	return policy.Config{
		ConfiguredLastN: conf.Policy.ChannelLastN,
		LastNTiers:      conf.Policy.LastNLimits,
		StageView:       conf.Policy.StageView,
		Heights:         conf.Video.HeightConfig,
	}
}

type configNode struct {
	TypeNode  reflect.Value
	TagPrefix string
}

func (conf *Config) ToCLIFlagNames(existingFlags []cli.Flag) map[string]reflect.Value {
	existingFlagNames := map[string]bool{}
	for _, flag := range existingFlags {
		for _, flagName := range flag.Names() {
			existingFlagNames[flagName] = true
		}
	}

	flagNames := map[string]reflect.Value{}
	var currNode configNode
	nodes := []configNode{{reflect.ValueOf(conf).Elem(), ""}}
	for len(nodes) > 0 {
		currNode, nodes = nodes[0], nodes[1:]
		for i := 0; i < currNode.TypeNode.NumField(); i++ {
			// inspect yaml tag from struct field to get path
			field := currNode.TypeNode.Type().Field(i)
			yamlTagArray := strings.SplitN(field.Tag.Get("yaml"), ",", 2)
			yamlTag := yamlTagArray[0]
			isInline := false
			if len(yamlTagArray) > 1 && yamlTagArray[1] == "inline" {
				isInline = true
			}
			if (yamlTag == "" && (!isInline || currNode.TagPrefix == "")) || yamlTag == "-" {
				continue
			}
			yamlPath := yamlTag
			if currNode.TagPrefix != "" {
				if isInline {
					yamlPath = currNode.TagPrefix
				} else {
					yamlPath = fmt.Sprintf("%s.%s", currNode.TagPrefix, yamlTag)
				}
			}
			if existingFlagNames[yamlPath] {
				continue
			}

			// map flag name to value
			value := currNode.TypeNode.Field(i)
			if value.Kind() == reflect.Struct {
				nodes = append(nodes, configNode{value, yamlPath})
			} else {
				flagNames[yamlPath] = value
			}
		}
	}

	return flagNames
}

func GenerateCLIFlags(existingFlags []cli.Flag, hidden bool) ([]cli.Flag, error) {
	blankConfig := &Config{}
	flags := make([]cli.Flag, 0)
	for name, value := range blankConfig.ToCLIFlagNames(existingFlags) {
		kind := value.Kind()
		if kind == reflect.Ptr {
			kind = value.Type().Elem().Kind()
		}

		var flag cli.Flag
		envVar := fmt.Sprintf("%s_%s", envVarPrefix, strings.ToUpper(strings.Replace(name, ".", "_", -1)))

		if value.Type() == durationType {
			flags = append(flags, &cli.DurationFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			})
			continue
		}

		switch kind {
		case reflect.Bool:
			flag = &cli.BoolFlag{
				Name:   name,
				Usage:  generatedCLIFlagUsage,
				Hidden: hidden,
			}
		case reflect.String:
			flag = &cli.StringFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Int, reflect.Int32:
			flag = &cli.IntFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Int64:
			flag = &cli.Int64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			flag = &cli.UintFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Uint64:
			flag = &cli.Uint64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Float32, reflect.Float64:
			flag = &cli.Float64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Slice, reflect.Map:
			// only settable through yaml
			continue
		default:
			return flags, fmt.Errorf("cli flag generation unsupported for config type: %s is a %s", name, kind.String())
		}

		flags = append(flags, flag)
	}

	return flags, nil
}

func (conf *Config) updateFromCLI(c *cli.Context, baseFlags []cli.Flag) error {
	generatedFlagNames := conf.ToCLIFlagNames(baseFlags)
	for _, flag := range c.App.Flags {
		flagName := flag.Names()[0]

		// the `c.App.Name != "test"` check is needed because `c.IsSet(...)` is always false in unit tests
		if !c.IsSet(flagName) && c.App.Name != "test" {
			continue
		}

		configValue, ok := generatedFlagNames[flagName]
		if !ok {
			continue
		}

		if configValue.Type() == durationType {
			configValue.SetInt(int64(c.Duration(flagName)))
			continue
		}

		kind := configValue.Kind()
		if kind == reflect.Ptr {
			// instantiate value to be set
			configValue.Set(reflect.New(configValue.Type().Elem()))

			kind = configValue.Type().Elem().Kind()
			configValue = configValue.Elem()
		}

		switch kind {
		case reflect.Bool:
			configValue.SetBool(c.Bool(flagName))
		case reflect.String:
			configValue.SetString(c.String(flagName))
		case reflect.Int, reflect.Int32, reflect.Int64:
			configValue.SetInt(c.Int64(flagName))
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			configValue.SetUint(c.Uint64(flagName))
		case reflect.Float32, reflect.Float64:
			configValue.SetFloat(c.Float64(flagName))
		default:
			return fmt.Errorf("unsupported generated cli flag type for config: %s is a %s", flagName, kind.String())
		}
	}

	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	if c.IsSet("url") {
		params, err := ParseURLString(c.String("url"), false, SourceHash)
		if err != nil {
			return errors.Wrap(err, "could not parse url parameters")
		}
		if err := conf.ApplyURLParams(params); err != nil {
			return err
		}
	}
	return nil
}

func InitLoggerFromConfig(config *LoggingConfig) {
	logger.InitFromConfig(config.Config, "loadtest")
}
