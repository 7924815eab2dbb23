package main

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	"github.com/fulldump/dataform/service"
)

func newSearchCmd(a *app) *cobra.Command {

	filter := ""
	options := service.SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List records matching a filter",
		Long: `Filters records with mongo-like conditions on their fields.

Example:
  dataform search --filter '{"province":"Ontario"}'
  dataform search --filter '{"id":{"$in":["A1","B2"]}}' --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			if filter != "" {
				err := json.Unmarshal([]byte(filter), &options.Filter)
				if err != nil {
					return fmt.Errorf("filter: %w", err)
				}
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			items, err := s.Search(options)
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "json filter")
	cmd.Flags().IntVar(&options.Skip, "skip", 0, "matches to skip")
	cmd.Flags().IntVar(&options.Limit, "limit", 0, "maximum matches, 0 for all")

	return cmd
}
