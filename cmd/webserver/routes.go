package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/webserver/app/webserver"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the WebSocket route table",
	Long:  `Print the WebSocket routes registered by serve, in match order.`,
	RunE:  runRoutes,
}

func init() {
	addServerFlags(routesCmd.Flags())
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := webserver.New(cfg, webserver.WithLogger(newLogger(cfg.AppName, cfg.Env, "error")))
	if err != nil {
		return err
	}
	if err := registerRoutes(app, cmd.Flags()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPATTERN\tMOUNT")
	for i, r := range app.WS().Routes() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, r.Pattern, r.MountPath)
	}
	return tw.Flush()
}
