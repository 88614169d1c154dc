package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wikitools/go-dokuwiki/dokuwiki"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dokuctl",
		Short:         "dokuctl: manage a DokuWiki wiki over XML-RPC",
		Long:          "dokuctl talks to a DokuWiki wiki through its XML-RPC API: read and write pages, transfer media files, and manage ACL rules from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPageCmd(),
		newMediaCmd(),
		newACLCmd(),
	)

	return rootCmd
}

// connect builds a client from the environment. Every subcommand calls
// it lazily so that help and completion work without a configured wiki.
func connect(ctx context.Context) (*dokuwiki.Client, error) {
	config, err := dokuwiki.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	return dokuwiki.New(ctx, config, logger)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the remote wiki's DokuWiki and API versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			version, err := wiki.Version(cmd.Context())
			if err != nil {
				return err
			}
			apiVersion, err := wiki.XMLRPCVersion(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dokuwiki\t%s\nxmlrpc-api\t%s\n", version, apiVersion)
			return nil
		},
	}
}
