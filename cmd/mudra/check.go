package main

import (
	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/detector"
)

func newCheckCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify camera, hand detector and pointer injection.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Check(cmd.OutOrStdout(), app.CheckDeps{
				Camera: o.newCamera(o.cfg.Capture()),
				NewDetector: func() (detector.Detector, error) {
					return o.newDetector(o.cfg.Detection(), o.logger.Named("detector"))
				},
				NewInjector: o.newInjector,
			})
			return err
		},
	}
}
