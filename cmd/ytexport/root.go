package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytexport/internal/app"
	"github.com/patrickprogramme/ytexport/internal/config"
	"github.com/patrickprogramme/ytexport/internal/ui"
)

func newRootCmd() *cobra.Command {
	flags := &app.CLIFlags{}

	root := &cobra.Command{
		Use:   "ytexport [url|id]",
		Short: "Exporte la transcription et les commentaires d'une vidéo YouTube",
		Long: `ytexport récupère la meilleure transcription disponible (langues essayées
dans l'ordre de la configuration) et tous les commentaires d'une vidéo, puis
les écrit en CSV et en texte dans <output_dir>/<titre>/.

Sans argument, l'URL est lue dans le presse-papier ou demandée.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runMode(flags, app.ModeAll),
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", "", "chemin du fichier de configuration (défaut : ytexport.yaml à côté de l'exécutable)")
	pf.StringSliceVarP(&flags.Languages, "lang", "l", nil, "langues de transcription par ordre de préférence (ex: fr,en)")
	pf.StringVarP(&flags.OutputDir, "output", "o", "", "dossier racine des exports")
	pf.StringVar(&flags.YtDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable yt-dlp")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "logs détaillés")

	root.AddCommand(
		&cobra.Command{
			Use:   "transcript [url|id]",
			Short: "Exporte uniquement la transcription",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runMode(flags, app.ModeTranscript),
		},
		&cobra.Command{
			Use:   "comments [url|id]",
			Short: "Exporte uniquement les commentaires",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runMode(flags, app.ModeComments),
		},
		newCheckCmd(flags),
	)
	return root
}

func runMode(flags *app.CLIFlags, mode app.Mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			flags.Input = args[0]
		}

		cfg, err := config.Load(defaultConfigPath(flags.ConfigPath))
		if err != nil {
			return err
		}
		applyFlags(cfg, flags)

		logger := newLogger(os.Stderr, cfg.LogLevel, flags.Verbose)
		slog.SetDefault(logger)
		logger.Debug("configuration chargée", slog.String("path", cfg.Path()))

		ctx := cmd.Context()
		a, err := app.NewFromConfig(ctx, cfg, ui.NewTerminal(), flags, logger)
		if err != nil {
			return err
		}
		return a.Run(ctx, mode)
	}
}

// defaultConfigPath place ytexport.yaml à côté de l'exécutable si aucun chemin n'est donné.
func defaultConfigPath(p string) string {
	if p != "" {
		return p
	}
	exePath, err := os.Executable()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
}

// applyFlags applique les flags par-dessus la configuration chargée.
func applyFlags(cfg *config.Config, f *app.CLIFlags) {
	if len(f.Languages) > 0 {
		cfg.SetLanguages(f.Languages)
	}
	if f.OutputDir != "" {
		cfg.OutputDir = filepath.Clean(f.OutputDir)
	}
	if f.YtDlpPath != "" {
		cfg.YtDlp.Path = f.YtDlpPath
		cfg.ResolveYtDlpPath()
	}
	if f.Verbose {
		cfg.LogLevel = "debug"
	}
}
