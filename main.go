package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/wave-progress/internal/config"
	"github.com/iburimskiy/wave-progress/internal/game"
)

//nolint:gochecknoglobals // Cobra flag bindings.
var (
	configFile string
	percent    string
	playFile   string
	pickFile   bool
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "wave-progress",
		Short: "Circular wave progress indicator",
		Long:  "Shows an animated circular wave progress indicator. The fill level comes from --percent, the config file, or the playback position of an audio file.",
		Args:  cobra.NoArgs,
		RunE:  run,
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	logrus.SetOutput(os.Stderr)

	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVarP(&percent, "percent", "p", "", `Fill level, e.g. "20%"`)
	rootCmd.Flags().StringVar(&playFile, "play", "", "Audio file (wav, mp3, flac) whose playback drives the fill level")
	rootCmd.Flags().BoolVar(&pickFile, "pick", false, "Choose the audio file with a file dialog")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("play", "pick")
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if percent != "" {
		cfg.Wave.InitialPercent = percent
	}

	g, err := game.New(cfg)
	if err != nil {
		return err
	}

	if pickFile {
		path, err := game.PickAudioFile()
		switch {
		case errors.Is(err, game.ErrNoFileSelected):
			logrus.Info("no audio file selected")
		case err != nil:
			return err
		default:
			playFile = path
		}
	}
	if playFile != "" {
		if err := g.Play(playFile); err != nil {
			return err
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
