package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newACLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acl",
		Short: "Manage ACL rules",
	}

	cmd.AddCommand(
		newACLAddCmd(),
		newACLDelCmd(),
	)

	return cmd
}

func newACLAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add SCOPE USER PERMISSION",
		Short: "Add an ACL rule (use @group for groups)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := wiki.AddACL(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("acl rule was not added")
			}
			return nil
		},
	}
}

func newACLDelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del SCOPE USER",
		Short: "Delete ACL rules matching scope and user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wiki, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := wiki.DelACL(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no matching acl rule was removed")
			}
			return nil
		},
	}
}
