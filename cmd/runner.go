package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/network"
	"github.com/wanderwise/wander/internal/repositories"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/storage"
	"github.com/wanderwise/wander/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	logger       *log.Logger
	output       io.Writer
	engine       *storage.Engine
	guides       *repositories.GuideRepository
	destinations *repositories.DestinationRepository
	trips        *repositories.TripRepository
	monitor      *network.Monitor
	pinner       *tasks.PinEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Engine  *storage.Engine
	Monitor *network.Monitor
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Engine == nil {
		opts.Engine = storage.NewEngine(opts.Config.Database.Path, opts.Logger)
	}
	guides := repositories.NewGuideRepository(opts.Engine, opts.Logger)

	return &Runner{
		config:       opts.Config,
		logger:       opts.Logger,
		output:       opts.Output,
		engine:       opts.Engine,
		guides:       guides,
		destinations: repositories.NewDestinationRepository(opts.Engine, opts.Logger),
		trips:        repositories.NewTripRepository(opts.Engine, opts.Logger),
		monitor:      opts.Monitor,
		pinner:       tasks.NewPinEngine(guides, opts.Config.Offline.PinRateLimit),
	}
}

// netMonitor returns the connectivity monitor, building it on first use.
// Construction samples the probe, so commands that never consult
// connectivity must not pay for a dial.
func (r *Runner) netMonitor() *network.Monitor {
	if r.monitor == nil {
		probe := network.DialProbe(r.config.Offline.ProbeAddr, 3*time.Second)
		interval := time.Duration(r.config.Offline.ProbeIntervalSeconds) * time.Second
		if interval <= 0 {
			interval = 15 * time.Second
		}
		r.monitor = network.NewMonitor(probe, interval, r.logger)
	}
	return r.monitor
}

// SetLogger replaces the runner's logger, used by the TUI to log to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, guideCommand, offlineCommand, destinationCommand, tripCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
