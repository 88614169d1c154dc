package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wikitools/go-dokuwiki/dokuwiki"
)

func newMediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage media attachments",
	}

	cmd.AddCommand(
		newMediaGetCmd(),
		newMediaPutCmd(),
		newMediaDeleteCmd(),
	)

	return cmd
}

func newMediaGetCmd() *cobra.Command {
	var dir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "get MEDIA",
		Short: "Download a media file into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			path, err := wiki.Medias.Save(cmd.Context(), args[0], dir, &dokuwiki.SaveOptions{Overwrite: overwrite})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "target directory")
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace an existing local file")

	return cmd
}

func newMediaPutCmd() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "put MEDIA FILE",
		Short: "Upload a local file as a media attachment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			return wiki.Medias.Add(cmd.Context(), args[0], args[1], !keep)
		},
	}

	cmd.Flags().BoolVarP(&keep, "keep", "k", false, "fail instead of replacing an existing remote file")

	return cmd
}

func newMediaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete MEDIA",
		Short: "Delete a media attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			return wiki.Medias.Delete(cmd.Context(), args[0])
		},
	}
}
