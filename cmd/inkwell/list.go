package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents in the projects directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			st, err := openStore(cfg, pslog.Ctx(cmd.Context()))
			if err != nil {
				return err
			}
			listing, err := st.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, group := range []struct {
				title string
				names []string
			}{
				{"Projects", listing.Projects},
				{"Daily journals", listing.Daily},
				{"Monthly logs", listing.Monthly},
			} {
				if len(group.names) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s:\n", group.title)
				for _, name := range group.names {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}
