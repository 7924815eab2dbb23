package main

import (
	"github.com/spf13/cobra"

	"github.com/fulldump/dataform/bootstrap"
	"github.com/fulldump/dataform/configuration"
)

func newServeCmd(a *app) *cobra.Command {

	c := configuration.Default()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the records over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			c.Filename = a.filename
			c.Journal = a.journal
			c.AtomicRewrite = a.atomic

			start, _, err := bootstrap.Bootstrap(&c, a.logger)
			if err != nil {
				return err
			}
			start()
			return nil
		},
	}

	cmd.Flags().StringVar(&c.HttpAddr, "addr", c.HttpAddr, "HTTP address")
	cmd.Flags().BoolVar(&c.EnableCompression, "compression", c.EnableCompression, "gzip responses when the client accepts it")
	cmd.Flags().StringVar(&c.ApiKey, "api-key", c.ApiKey, "required X-Api-Key header, empty to disable authentication")
	cmd.Flags().StringVar(&c.ApiSecret, "api-secret", c.ApiSecret, "required X-Api-Secret header")

	return cmd
}
