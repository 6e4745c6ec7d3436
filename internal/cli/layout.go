package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/mailpane/internal/layout"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show or reset the remembered pane layout",
	}
	cmd.AddCommand(newLayoutShowCmd())
	cmd.AddCommand(newLayoutResetCmd())
	return cmd
}

func newLayoutShowCmd() *cobra.Command {
	var widthFlag int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored pane sizes and collapsed flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			prefs, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			defer prefs.Close()

			l := layout.New(prefs).Load(cmd.Context())
			nav, list, detail := l.Widths(widthFlag, cfg.UI.NavCollapsedWidth)

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, toJSONLayout(l, widthFlag, [3]int{nav, list, detail}))
			}

			w := newTabWriter(out)
			fmt.Fprintf(w, "Sizes:\t%g / %g / %g\n", l.Sizes[0], l.Sizes[1], l.Sizes[2])
			fmt.Fprintf(w, "Collapsed:\t%t\n", l.Collapsed)
			fmt.Fprintf(w, "Columns at %d:\t%d / %d / %d\n", widthFlag, nav, list, detail)
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&widthFlag, "width", 120, "terminal width used to compute pane columns")
	return cmd
}

func newLayoutResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored layout so the defaults apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			prefs, err := openPrefs(cfg)
			if err != nil {
				return err
			}
			defer prefs.Close()

			if err := layout.New(prefs).Reset(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				return fprintJSON(out, jsonAction{OK: true, Action: "layout_reset"})
			}
			fmt.Fprintln(out, "Layout reset to defaults")
			return nil
		},
	}
}
