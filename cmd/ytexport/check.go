package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytexport/internal/app"
	"github.com/patrickprogramme/ytexport/internal/config"
	"github.com/patrickprogramme/ytexport/internal/fetch"
	"github.com/patrickprogramme/ytexport/internal/updater"
	"github.com/patrickprogramme/ytexport/internal/yt"
)

// newCheckCmd vérifie la présence de yt-dlp et compare sa version à la dernière release.
func newCheckCmd(flags *app.CLIFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Vérifie yt-dlp et signale une mise à jour disponible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(defaultConfigPath(flags.ConfigPath))
			if err != nil {
				return err
			}
			applyFlags(cfg, flags)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			dl, version, err := yt.InitYtDlp(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "yt-dlp %s (%s)\n", version, dl.Path)

			res, err := updater.NewChecker(fetch.New(cfg.HTTPTimeout)).Check(ctx, version)
			if err != nil {
				return err
			}
			if res.IsUpToDate {
				fmt.Fprintln(out, "✅ yt-dlp est à jour")
				return nil
			}
			fmt.Fprintf(out, "⚠️  Nouvelle version disponible : %s\n%s\n", res.Latest.TagName, res.DownloadURL(runtime.GOOS))
			return nil
		},
	}
}
