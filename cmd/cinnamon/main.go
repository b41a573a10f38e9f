package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"github.com/jask/cinnamon/internal/config"
	"github.com/jask/cinnamon/internal/counter"
	"github.com/jask/cinnamon/internal/flux"
	"github.com/jask/cinnamon/internal/instance"
	"github.com/jask/cinnamon/internal/telemetry"
	"github.com/jask/cinnamon/internal/tui"
)

const version = "0.1.0"

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load()
	if err != nil {
		glog.Fatalf("config: %v", err)
	}
	applyLogConfig(cfg.Log)
	glog.Infof("[main]start version = %s\n", version)

	var observer flux.Observer
	if cfg.Telemetry.Enabled {
		providers, obs, closeOut, err := startTelemetry(cfg.Telemetry.Output)
		if err != nil {
			glog.Fatalf("telemetry: %v", err)
		}
		defer func() {
			if err := providers.Shutdown(context.Background()); err != nil {
				glog.Errorf("[main]telemetry shutdown error = %s\n", err)
			}
			closeOut()
		}()
		observer = obs
	}

	// stores
	counterStore := flux.NewStore(cfg.Counter.Initial, counter.Reduce, counterOptions(cfg, observer)...)
	instancer := instance.New(counter.Reduce)
	instanceStore := flux.NewStore(instance.State[counter.State](cfg.Instances.Initial), instancer.Apply, instanceOptions(cfg, observer)...)

	app := tui.New(tui.Stores{
		Counter:   counterStore,
		Instances: instanceStore,
		Instancer: instancer,
	}, tui.Options{
		Step:  cfg.Counter.Step,
		Views: cfg.Instances.Views,
	})
	defer app.Close()

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	glog.Infof("[main]exit counter = %d instances = %v\n", counterStore.State(), instanceStore.State())
}

// applyLogConfig maps config onto glog's flags unless they were set on the
// command line.
func applyLogConfig(cfg config.LogConfig) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["v"] && cfg.Verbosity > 0 {
		_ = flag.Set("v", strconv.Itoa(cfg.Verbosity))
	}
	if !set["log_dir"] && cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			glog.Warningf("[main]log dir %s error = %s\n", cfg.Dir, err)
			return
		}
		_ = flag.Set("log_dir", cfg.Dir)
	}
}

func counterOptions(cfg config.Config, observer flux.Observer) []flux.Option[counter.State] {
	opts := []flux.Option[counter.State]{flux.WithName[counter.State]("counter")}
	if cfg.Store.SkipUnchanged {
		opts = append(opts, flux.WithEqual(flux.Equal[counter.State]))
	}
	if observer != nil {
		opts = append(opts, flux.WithObserver[counter.State](observer))
	}
	return opts
}

func instanceOptions(cfg config.Config, observer flux.Observer) []flux.Option[instance.State[counter.State]] {
	opts := []flux.Option[instance.State[counter.State]]{flux.WithName[instance.State[counter.State]]("instances")}
	if cfg.Store.SkipUnchanged {
		opts = append(opts, flux.WithEqual(instance.Same[counter.State]))
	}
	if observer != nil {
		opts = append(opts, flux.WithObserver[instance.State[counter.State]](observer))
	}
	return opts
}

func startTelemetry(path string) (*telemetry.Providers, flux.Observer, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("mkdir telemetry dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open telemetry output: %w", err)
	}
	providers, obs, err := telemetry.Setup(f, "cinnamon", version)
	if err != nil {
		_ = f.Close()
		return nil, nil, nil, err
	}
	return providers, obs, func() { _ = f.Close() }, nil
}
