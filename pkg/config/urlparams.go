package config

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"

	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
)

type ParamSource string

const (
	SourceHash   ParamSource = "hash"
	SourceSearch ParamSource = "search"
)

var (
	ErrInvalidURLParam = errors.New("invalid url parameter")

	blacklistedKeys = []string{"__proto__", "constructor", "prototype"}
)

func ParseURLString(raw string, dontParse bool, source ParamSource) (map[string]any, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return ParseURLParams(u, dontParse, source), nil
}

// ParseURLParams reads the fragment (or query) parameters of u. Unless
// dontParse is set, values are unescaped and decoded as yaml flow values, so
// `true`, `3` and `{"5": 20}` come back typed. Values that fail to decode are
// logged and dropped.
func ParseURLParams(u *url.URL, dontParse bool, source ParamSource) map[string]any {
	params := map[string]any{}
	if u == nil {
		return params
	}

	paramStr := u.EscapedFragment()
	if source == SourceSearch {
		paramStr = u.RawQuery
	}
	if paramStr == "" {
		return params
	}

	parts := strings.Split(paramStr, "&")
	// hash router paths like #/room are not parameters
	if source == SourceHash && len(parts) == 1 && strings.HasPrefix(parts[0], "/") {
		return params
	}

	for _, part := range parts {
		key, value, hasValue := strings.Cut(part, "=")
		if key == "" || slices.ContainsFunc(strings.Split(key, "."), func(k string) bool {
			return slices.Contains(blacklistedKeys, k)
		}) {
			continue
		}

		if dontParse {
			params[key] = value
			continue
		}
		if !hasValue {
			continue
		}

		decoded, err := url.PathUnescape(value)
		if err != nil {
			logger.Warnw("failed to unescape url parameter", err, "key", key, "value", value)
			continue
		}
		decoded = strings.Replace(decoded, `\&`, "&", 1)
		if decoded == "undefined" {
			continue
		}

		var parsed any
		if err := yaml.Unmarshal([]byte(decoded), &parsed); err != nil {
			logger.Warnw("failed to parse url parameter value", err, "key", key, "value", decoded)
			continue
		}
		params[key] = parsed
	}
	return params
}

type urlParamSetter struct {
	key   string
	apply func(conf *Config, v any) error
}

// ordered so that explicit client parameters override what the embedded
// meeting config implies
var urlParamSetters = []urlParamSetter{
	{"config.startWithAudioMuted", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.StartAudioMuted = b
		conf.Media.LocalAudio = !b
		return nil
	}},
	{"config.startWithVideoMuted", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.StartVideoMuted = b
		conf.Media.LocalVideo = !b
		return nil
	}},
	{"config.disableTileView", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Policy.StageView = b
		return nil
	}},
	{"config.channelLastN", func(conf *Config, v any) error {
		n, err := int32Param(v)
		if err != nil {
			return err
		}
		conf.Policy.ChannelLastN = n
		return nil
	}},
	{"config.lastNLimits", func(conf *Config, v any) error {
		tiers, err := tiersParam(v)
		if err != nil {
			return err
		}
		conf.Policy.LastNLimits = tiers
		return nil
	}},
	{"isHuman", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.RemoteVideo = b
		conf.Media.RemoteAudio = b
		return nil
	}},
	{"localVideo", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.LocalVideo = b
		return nil
	}},
	{"localAudio", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.LocalAudio = b
		return nil
	}},
	{"remoteVideo", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.RemoteVideo = b
		return nil
	}},
	{"remoteAudio", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Media.RemoteAudio = b
		return nil
	}},
	{"stageView", func(conf *Config, v any) error {
		b, err := boolParam(v)
		if err != nil {
			return err
		}
		conf.Policy.StageView = b
		return nil
	}},
	{"numClients", func(conf *Config, v any) error {
		n, err := intParam(v)
		if err != nil {
			return err
		}
		conf.NumClients = n
		return nil
	}},
	{"clientInterval", func(conf *Config, v any) error {
		n, err := intParam(v)
		if err != nil {
			return err
		}
		conf.ClientInterval = time.Duration(n) * time.Millisecond
		return nil
	}},
}

// ApplyURLParams overrides the configuration with parsed url parameters.
// Unknown keys are ignored.
func (conf *Config) ApplyURLParams(params map[string]any) error {
	for _, s := range urlParamSetters {
		v, ok := params[s.key]
		if !ok || v == nil {
			continue
		}
		if err := s.apply(conf, v); err != nil {
			return errors.Wrapf(err, "url parameter %s", s.key)
		}
	}
	return conf.Validate()
}

func boolParam(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, errors.Wrapf(ErrInvalidURLParam, "%q is not a boolean", b)
		}
		return parsed, nil
	default:
		return false, errors.Wrapf(ErrInvalidURLParam, "%v is not a boolean", v)
	}
}

func intParam(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.Wrapf(ErrInvalidURLParam, "%v is not an integer", n)
		}
		return int(n), nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidURLParam, "%q is not an integer", n)
		}
		return parsed, nil
	default:
		return 0, errors.Wrapf(ErrInvalidURLParam, "%v is not an integer", v)
	}
}

func int32Param(v any) (int32, error) {
	n, err := intParam(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errors.Wrapf(ErrInvalidURLParam, "%d is out of range", n)
	}
	return int32(n), nil
}

// tiersParam converts a {participants: lastN} object into an ascending tier list.
func tiersParam(v any) ([]lastn.Tier, error) {
	m := map[string]any{}
	switch obj := v.(type) {
	case map[string]any:
		m = obj
	case map[any]any:
		for k, val := range obj {
			m[fmt.Sprint(k)] = val
		}
	default:
		return nil, errors.Wrapf(ErrInvalidURLParam, "%v is not an object", v)
	}

	tiers := make([]lastn.Tier, 0, len(m))
	for k, val := range m {
		threshold, err := strconv.Atoi(k)
		if err != nil || threshold <= 0 {
			return nil, errors.Wrapf(ErrInvalidURLParam, "%q is not a participant count", k)
		}
		n, err := int32Param(val)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, lastn.Tier{MaxParticipants: threshold, LastN: n})
	}
	slices.SortFunc(tiers, func(a, b lastn.Tier) int {
		return a.MaxParticipants - b.MaxParticipants
	})
	return tiers, nil
}
