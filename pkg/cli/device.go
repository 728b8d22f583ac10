package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/recorderlab-dev/recorder-insight/pkg/agent"
	"github.com/recorderlab-dev/recorder-insight/pkg/config"
	"github.com/recorderlab-dev/recorder-insight/pkg/logger"
)

var devicesCommand = &cli.Command{
	Name:   "devices",
	Usage:  "List connected devices and available AVDs",
	Action: runDevices,
}

var doctorCommand = &cli.Command{
	Name:   "doctor",
	Usage:  "Check agent health and toolchain setup",
	Action: runDoctor,
}

var emulatorCommand = &cli.Command{
	Name:  "emulator",
	Usage: "Manage emulators through the device agent",
	Subcommands: []*cli.Command{
		{
			Name:      "start",
			Usage:     "Boot an AVD",
			ArgsUsage: "<avd-name>",
			Action:    runEmulatorStart,
		},
		{
			Name:      "stop",
			Usage:     "Shut down an emulator",
			ArgsUsage: "<serial>",
			Action:    runEmulatorStop,
		},
	},
}

var execCommand = &cli.Command{
	Name:      "exec",
	Usage:     "Run a shell command through the agent's terminal endpoint",
	ArgsUsage: "<command>...",
	Action:    runExec,
}

// newAgentClient builds the agent client from env/.env config, with the
// --agent-url flag winning when set.
func newAgentClient(c *cli.Context) (*agent.Client, context.Context, context.CancelFunc, error) {
	cfg, err := config.LoadAgentConfig(config.GetHome())
	if err != nil {
		return nil, nil, nil, cli.Exit(fmt.Sprintf("agent config: %v", err), 2)
	}

	url := cfg.URL
	if flagURL := c.String("agent-url"); flagURL != "" {
		url = flagURL
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second

	client := agent.NewClient(url, agent.WithTimeout(timeout))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return client, ctx, cancel, nil
}

func runDevices(c *cli.Context) error {
	client, ctx, cancel, err := newAgentClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	list, err := client.Devices(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	w := printerTo(c.App.Writer)
	if len(list.Connected) == 0 {
		w("No devices connected.\n")
	} else {
		table := tablewriter.NewWriter(c.App.Writer)
		table.SetHeader([]string{"Serial", "State", "Model", "SDK", "Emulator"})
		table.SetBorder(false)
		for _, d := range list.Connected {
			emulator := ""
			if d.IsEmulator {
				emulator = "yes"
			}
			table.Append([]string{d.Serial, d.State, d.Model, fmt.Sprintf("%d", d.SDK), emulator})
		}
		table.Render()
	}

	if len(list.AVDs) > 0 {
		header(w, "Available AVDs")
		for _, avd := range list.AVDs {
			w("  %s", avd.Name)
			if avd.Target != "" {
				w(" %s(%s)%s", color(colorGray), avd.Target, color(colorReset))
			}
			w("\n")
		}
	}
	return nil
}

func runDoctor(c *cli.Context) error {
	client, ctx, cancel, err := newAgentClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	w := printerTo(c.App.Writer)

	health, err := client.Health(ctx)
	if err != nil {
		w("%s✗%s agent unreachable at %s: %v\n", color(colorRed), color(colorReset), client.BaseURL(), err)
		return cli.Exit("", 1)
	}
	w("%s✓%s agent %s at %s\n", color(colorGreen), color(colorReset), health.Version, client.BaseURL())

	status, err := client.SetupStatus(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	checks := []struct {
		name string
		ok   bool
	}{
		{"adb installed", status.ADBInstalled},
		{"node installed", status.NodeInstalled},
		{"appium installed", status.AppiumInstalled},
		{"appium running", status.AppiumRunning},
		{"device connected", status.DeviceConnected},
	}
	for _, check := range checks {
		if check.ok {
			w("%s✓%s %s\n", color(colorGreen), color(colorReset), check.name)
		} else {
			w("%s✗%s %s\n", color(colorRed), color(colorReset), check.name)
		}
	}
	for _, msg := range status.Messages {
		w("  %s%s%s\n", color(colorGray), msg, color(colorReset))
	}

	if !status.IsReady() {
		return cli.Exit("", 1)
	}
	w("\nSetup looks good.\n")
	return nil
}

func runEmulatorStart(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("emulator start needs an AVD name", 2)
	}
	avdName := c.Args().First()

	client, ctx, cancel, err := newAgentClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	w := printerTo(c.App.Writer)
	w("%s⏳ Starting AVD: %s%s\n", color(colorCyan), avdName, color(colorReset))

	handle, err := client.StartEmulator(ctx, avdName)
	if err != nil {
		// Suggest the closest AVD name when the requested one is off.
		if hint := closestAVD(ctx, client, avdName); hint != "" {
			return cli.Exit(fmt.Sprintf("%v\nDid you mean %q?", err, hint), 1)
		}
		return cli.Exit(err.Error(), 1)
	}

	logger.Info("emulator started: avd=%s serial=%s", handle.AVD, handle.Serial)
	w("%s✓%s %s booted as %s\n", color(colorGreen), color(colorReset), handle.AVD, handle.Serial)
	return nil
}

func runEmulatorStop(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("emulator stop needs a device serial", 2)
	}
	serial := c.Args().First()

	client, ctx, cancel, err := newAgentClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	if err := client.StopEmulator(ctx, serial); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "Stopped %s\n", serial)
	return nil
}

func runExec(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("exec needs a command", 2)
	}
	command := strings.Join(c.Args().Slice(), " ")

	client, ctx, cancel, err := newAgentClient(c)
	if err != nil {
		return err
	}
	defer cancel()

	out, err := client.RunCommand(ctx, command)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if out.Stdout != "" {
		fmt.Fprint(c.App.Writer, out.Stdout)
	}
	if out.Stderr != "" {
		fmt.Fprint(c.App.ErrWriter, out.Stderr)
	}
	if out.ExitCode != 0 {
		return cli.Exit("", out.ExitCode)
	}
	return nil
}

// closestAVD fetches the AVD list and returns the closest name to the
// requested one, or "" when nothing is close or the list is unavailable.
func closestAVD(ctx context.Context, client *agent.Client, name string) string {
	list, err := client.Devices(ctx)
	if err != nil {
		return ""
	}
	return agent.ClosestName(name, agent.AVDNames(list.AVDs))
}
