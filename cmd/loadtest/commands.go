package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/jitsi/jitsi-meet-load-test/pkg/config"
	"github.com/jitsi/jitsi-meet-load-test/pkg/lastn"
	"github.com/jitsi/jitsi-meet-load-test/pkg/loadtest"
)

type policyRow struct {
	Participants int
	LastN        int32
	TileHeight   int32
	StageHeight  int32
}

func policyRows(conf *config.Config, maxParticipants int) []policyRow {
	pc := conf.PolicyConfig()
	rows := make([]policyRow, 0, maxParticipants)
	for n := 1; n <= maxParticipants; n++ {
		rows = append(rows, policyRow{
			Participants: n,
			LastN:        lastn.ComputeLastN(pc.ConfiguredLastN, n, pc.LastNTiers),
			TileHeight:   pc.Heights.MaxHeight(false, n),
			StageHeight:  pc.Heights.MaxHeight(true, n),
		})
	}
	return rows
}

func printPolicyTable(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return errors.Wrap(err, "get config")
	}

	maxParticipants := c.Int("max-participants")
	if maxParticipants < 1 {
		return fmt.Errorf("max-participants must be at least 1, got %d", maxParticipants)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"Participants",
		"LastN",
		"Tile Height",
		"Stage Height",
	})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, row := range policyRows(conf, maxParticipants) {
		table.Append([]string{
			strconv.Itoa(row.Participants),
			formatLastN(row.LastN),
			strconv.Itoa(int(row.TileHeight)),
			strconv.Itoa(int(row.StageHeight)),
		})
	}
	table.Render()
	return nil
}

func formatLastN(n int32) string {
	if n == lastn.Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(int(n))
}

func printSummary(s loadtest.Summary) {
	renderSummary(os.Stdout, s)
}

func renderSummary(w io.Writer, s loadtest.Summary) {
	fmt.Fprintf(w, "room %s, started %s, ran for %s\n",
		s.Room, humanize.Time(s.StartedAt), s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "%s receiver constraints published, %s publish errors, %s stage changes\n",
		humanize.Comma(int64(s.Policy.ConstraintsPublished)),
		humanize.Comma(int64(s.Policy.PublishErrors)),
		humanize.Comma(int64(s.Policy.StageChanges)),
	)

	table := tablewriter.NewWriter(w)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"Client",
		"Visitor",
		"Roster",
		"LastN",
		"Max Height",
		"On Stage",
		"Publishes",
		"Errors",
	})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, c := range s.Clients {
		lastN, height, onStage := "-", "-", "-"
		if c.Policy.HasPublished {
			lastN = formatLastN(c.Policy.LastPublished.LastN)
			height = strconv.Itoa(int(c.Policy.LastPublished.DefaultMaxHeight))
			if len(c.Policy.LastPublished.OnStageSources) > 0 {
				onStage = strings.Join(c.Policy.LastPublished.OnStageSources, ",")
			}
		}
		table.Append([]string{
			string(c.ID),
			strconv.FormatBool(c.Visitor),
			strconv.Itoa(c.Policy.RosterCount),
			lastN,
			height,
			onStage,
			humanize.Comma(c.Publishes),
			humanize.Comma(c.PublishErrors),
		})
	}
	table.Render()
}

type clientReport struct {
	ID             string   `yaml:"id"`
	Visitor        bool     `yaml:"visitor,omitempty"`
	RosterCount    int      `yaml:"roster_count"`
	LastN          int32    `yaml:"last_n"`
	MaxHeight      int32    `yaml:"max_height"`
	OnStageSources []string `yaml:"on_stage_sources,omitempty"`
	RemoteVideo    int      `yaml:"remote_video_tracks"`
	RemoteAudio    int      `yaml:"remote_audio_tracks"`
	Publishes      int64    `yaml:"publishes"`
	PublishErrors  int64    `yaml:"publish_errors,omitempty"`
}

type summaryReport struct {
	RunID                string         `yaml:"run_id"`
	Room                 string         `yaml:"room"`
	StageView            bool           `yaml:"stage_view"`
	StartedAt            time.Time      `yaml:"started_at"`
	Elapsed              time.Duration  `yaml:"elapsed"`
	Participants         int            `yaml:"participants"`
	Visitors             int            `yaml:"visitors"`
	DominantSpeaker      string         `yaml:"dominant_speaker,omitempty"`
	ConstraintsPublished uint64         `yaml:"constraints_published"`
	PublishErrors        uint64         `yaml:"publish_errors"`
	StageChanges         uint64         `yaml:"stage_changes"`
	ClientsStarted       int32          `yaml:"clients_started"`
	ClientsConnected     int32          `yaml:"clients_connected"`
	Clients              []clientReport `yaml:"clients"`
}

func newSummaryReport(runID string, s loadtest.Summary) summaryReport {
	report := summaryReport{
		RunID:                runID,
		Room:                 s.Room,
		StageView:            s.StageView,
		StartedAt:            s.StartedAt,
		Elapsed:              s.Elapsed,
		Participants:         s.RoomStats.Participants,
		Visitors:             s.RoomStats.Visitors,
		DominantSpeaker:      string(s.RoomStats.DominantSpeaker),
		ConstraintsPublished: s.Policy.ConstraintsPublished,
		PublishErrors:        s.Policy.PublishErrors,
		StageChanges:         s.Policy.StageChanges,
		ClientsStarted:       s.Lifecycle.Started,
		ClientsConnected:     s.Lifecycle.Connected,
	}
	for _, c := range s.Clients {
		cr := clientReport{
			ID:            string(c.ID),
			Visitor:       c.Visitor,
			RosterCount:   c.Policy.RosterCount,
			LastN:         c.Policy.LastPublished.LastN,
			MaxHeight:     c.Policy.LastPublished.DefaultMaxHeight,
			RemoteVideo:   c.RemoteVideoTracks,
			RemoteAudio:   c.RemoteAudioTracks,
			Publishes:     c.Publishes,
			PublishErrors: c.PublishErrors,
		}
		if len(c.Policy.LastPublished.OnStageSources) > 0 {
			cr.OnStageSources = append([]string(nil), c.Policy.LastPublished.OnStageSources...)
		}
		report.Clients = append(report.Clients, cr)
	}
	return report
}

func writeSummary(file string, runID string, s loadtest.Summary) error {
	out, err := yaml.Marshal(newSummaryReport(runID, s))
	if err != nil {
		return errors.Wrap(err, "could not marshal summary")
	}
	if err := os.WriteFile(file, out, 0o644); err != nil {
		return errors.Wrapf(err, "could not write summary to %s", file)
	}
	return nil
}

func helpVerbose(c *cli.Context) error {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, false)
	if err != nil {
		return err
	}

	c.App.Flags = append(baseFlags, generatedFlags...)
	return cli.ShowAppHelp(c)
}
