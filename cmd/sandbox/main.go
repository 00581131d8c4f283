package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/akmonengine/sandbox/app"
	"github.com/akmonengine/sandbox/config"
	"github.com/akmonengine/sandbox/diag"
	"github.com/akmonengine/sandbox/input"
	"github.com/akmonengine/sandbox/present"
	"github.com/akmonengine/sandbox/present/window"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	logLevel   string
	width      int
	height     int
	mode       string
	noAudio    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:          "sandbox",
		Short:        "software rendered rigid body sandbox",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&f.configPath, "config", config.Path(), "YAML config file")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "logging level, overrides the config")
	rootCmd.PersistentFlags().IntVar(&f.width, "width", 0, "frame width in pixels")
	rootCmd.PersistentFlags().IntVar(&f.height, "height", 0, "frame height in pixels")
	rootCmd.PersistentFlags().StringVar(&f.mode, "mode", "", "camera mode, 2d or 3d")
	rootCmd.PersistentFlags().BoolVar(&f.noAudio, "no-audio", false, "disable the synthesizer")

	rootCmd.AddCommand(newWindowCmd(f), newTTYCmd(f), newSnapshotCmd(f))
	return rootCmd
}

// load reads the config file and applies the command-line overrides
func (f *flags) load() (config.Config, *logrus.Logger, error) {
	conf, err := config.Load(f.configPath)
	if err != nil {
		return conf, nil, err
	}
	if f.logLevel != "" {
		conf.LogLevel = f.logLevel
	}
	if f.width > 0 {
		conf.Width = f.width
	}
	if f.height > 0 {
		conf.Height = f.height
	}
	if f.mode != "" {
		conf.Mode = f.mode
	}
	if f.noAudio {
		conf.Audio = false
	}
	if err := conf.Validate(); err != nil {
		return conf, nil, err
	}

	log, err := diag.NewLogger(conf.LogLevel, os.Stderr)
	return conf, log, err
}

func newWindowCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "open a desktop window",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := f.load()
			if err != nil {
				return err
			}

			var a *app.App
			win := window.NewWindow("sandbox", conf.Width, conf.Height,
				func(e input.Event) bool { return a.Handle(e) },
				func() string { return a.Sink.Last() },
			)
			a, err = app.New(conf, log, win)
			if err != nil {
				return err
			}

			if err := a.Start(cmd.Context()); err != nil {
				return err
			}
			runErr := win.Run()
			if err := a.Stop(); err != nil {
				log.WithError(err).Warn("shutdown")
			}
			return runErr
		},
	}
}

func newTTYCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tty",
		Short: "draw in the terminal with half-block characters",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := f.load()
			if err != nil {
				return err
			}
			// the terminal owns stderr while running
			log.SetOutput(logFile())

			var a *app.App
			term, err := present.NewTerminal(func() string { return a.Sink.Last() })
			if err != nil {
				return err
			}
			defer term.Close()

			conf.Width, conf.Height = term.PixelSize()
			a, err = app.New(conf, log, term)
			if err != nil {
				return err
			}

			if err := a.Start(cmd.Context()); err != nil {
				return err
			}
			term.Poll(cmd.Context(), a.Handle)

			return a.Stop()
		},
	}
}

func newSnapshotCmd(f *flags) *cobra.Command {
	var (
		frames int
		out    string
		spawn  string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate headless and write the final frame as PNG",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, log, err := f.load()
			if err != nil {
				return err
			}
			conf.Audio = false

			png := present.NewPNGFile(out)
			a, err := app.New(conf, log, png)
			if err != nil {
				return err
			}

			for _, key := range spawn {
				a.Handle(input.KeyDown(key))
			}
			if err := a.Run(cmd.Context(), frames, 1/float64(conf.TickHz)); err != nil {
				return err
			}
			if err := png.Err(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s after %d steps\n", out, frames)
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 60, "physics steps before the snapshot")
	cmd.Flags().StringVar(&out, "out", "sandbox.png", "output PNG file")
	cmd.Flags().StringVar(&spawn, "spawn", "2", "keys replayed before simulating, e.g. 123p")

	return cmd
}

// logFile is where the tty command logs, stderr being taken by the screen
func logFile() *os.File {
	f, err := os.OpenFile("sandbox.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return f
}
