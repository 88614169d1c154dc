package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wikitools/go-dokuwiki/dokuwiki"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage wiki pages",
	}

	cmd.AddCommand(
		newPageGetCmd(),
		newPagePutCmd(),
		newPageListCmd(),
		newPageSearchCmd(),
		newPageDeleteCmd(),
	)

	return cmd
}

func newPageGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get PAGE",
		Short: "Print the wikitext content of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			content, err := wiki.Pages.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func newPagePutCmd() *cobra.Command {
	var summary string
	var minor bool

	cmd := &cobra.Command{
		Use:   "put PAGE FILE",
		Short: "Replace the content of a page with a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			opts := &dokuwiki.EditOptions{Summary: summary, Minor: minor}
			return wiki.Pages.Set(cmd.Context(), args[0], string(content), opts)
		},
	}

	cmd.Flags().StringVarP(&summary, "summary", "s", "", "change summary")
	cmd.Flags().BoolVarP(&minor, "minor", "m", false, "mark as minor change")

	return cmd
}

func newPageListCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "list [NAMESPACE]",
		Short: "List pages of a namespace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace := "/"
			if len(args) == 1 {
				namespace = args[0]
			}
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			pages, err := wiki.Pages.List(cmd.Context(), namespace, &dokuwiki.ListOptions{Depth: &depth})
			if err != nil {
				return err
			}
			for _, page := range pages {
				if m, ok := page.(map[string]any); ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), m["id"])
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "recursion level, 0 for all")

	return cmd
}

func newPageSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Full-text search across wiki pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			hits, err := wiki.Pages.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, hit := range hits {
				if m, ok := hit.(map[string]any); ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\n", m["id"], m["score"])
				}
			}
			return nil
		},
	}
}

func newPageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PAGE",
		Short: "Delete a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			return wiki.Pages.Delete(cmd.Context(), args[0])
		},
	}
}
