package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config"
	"github.com/jitsi/jitsi-meet-load-test/pkg/loadtest"
	"github.com/jitsi/jitsi-meet-load-test/pkg/telemetry/prometheus"
	"github.com/jitsi/jitsi-meet-load-test/version"
)

const runIDPrefix = "LT_"

var baseFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to load test config file",
	},
	&cli.StringFlag{
		Name:    "config-body",
		Usage:   "load test config in YAML, typically passed in as an environment var in a container",
		EnvVars: []string{"JITSI_LOAD_TEST_CONFIG"},
	},
	&cli.StringFlag{
		Name:  "url",
		Usage: "conference URL, hash parameters such as #numClients=10&stageView=true override the config",
	},
	// debugging flags
	&cli.StringFlag{
		Name:  "memprofile",
		Usage: "write memory profile to `file`",
	},
	&cli.BoolFlag{
		Name:  "dev",
		Usage: "sets log-level to debug and console formatter",
	},
	&cli.BoolFlag{
		Name:   "disable-strict-config",
		Usage:  "disables strict config parsing",
		Hidden: true,
	},
}

func main() {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, true)
	if err != nil {
		fmt.Println(err)
	}

	app := &cli.App{
		Name:        "jitsi-load-test",
		Usage:       "Simulated conference participants exercising receiver constraints",
		Description: "run without subcommands to start the load test",
		Flags:       append(baseFlags, generatedFlags...),
		Action:      runLoadTest,
		Commands: []*cli.Command{
			{
				Name:   "policy-table",
				Usage:  "print lastN and max height the configured policy requests per roster size",
				Action: printPolicyTable,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-participants",
						Usage: "largest roster size to print",
						Value: 20,
					},
				},
			},
			{
				Name:   "help-verbose",
				Usage:  "prints app help, including all generated configuration flags",
				Action: helpVerbose,
			},
		},
		Version: version.Version,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getConfig(c *cli.Context) (*config.Config, error) {
	confString, err := getConfigString(c.String("config"), c.String("config-body"))
	if err != nil {
		return nil, err
	}

	strictMode := true
	if c.Bool("disable-strict-config") {
		strictMode = false
	}

	conf, err := config.NewConfig(confString, strictMode, c, baseFlags)
	if err != nil {
		return nil, err
	}
	config.InitLoggerFromConfig(&conf.Logging)

	if conf.Development {
		logger.Infow("starting in development mode")
	}
	return conf, nil
}

func runLoadTest(c *cli.Context) error {
	memProfile := c.String("memprofile")

	conf, err := getConfig(c)
	if err != nil {
		return err
	}

	if memProfile != "" {
		if f, err := os.Create(memProfile); err != nil {
			return err
		} else {
			defer func() {
				// run memory profile at termination
				runtime.GC()
				_ = pprof.WriteHeapProfile(f)
				_ = f.Close()
			}()
		}
	}

	runID := utils.NewGuid(runIDPrefix)
	prometheus.Init(runID, conf.Environment)
	if conf.PrometheusPort > 0 {
		startPrometheusServer(conf.PrometheusPort)
	}

	runner, err := loadtest.InitializeRunner(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Infow("exit requested, shutting down", "signal", sig)
			runner.Stop()
		case <-ctx.Done():
		}
	}()

	logger.Infow("starting load test",
		"runID", runID,
		"room", conf.Room,
		"numClients", conf.NumClients,
		"version", version.Version,
	)
	if err := runner.Run(ctx); err != nil {
		return err
	}

	summary := runner.Summary()
	printSummary(summary)
	if conf.SummaryFile != "" {
		if err := writeSummary(conf.SummaryFile, runID, summary); err != nil {
			return err
		}
		logger.Infow("summary written", "file", conf.SummaryFile)
	}
	return nil
}

func startPrometheusServer(port uint32) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)

	go func() {
		logger.Infow("starting prometheus server", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Errorw("prometheus server failed", err)
		}
	}()
}

func getConfigString(configFile string, inConfigBody string) (string, error) {
	if inConfigBody != "" || configFile == "" {
		return inConfigBody, nil
	}

	outConfigBody, err := os.ReadFile(configFile)
	if err != nil {
		return "", err
	}

	return string(outConfigBody), nil
}
