package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seresa/node"
)

func (a *app) chainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Manages the chains joined by the node.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "join <chain>",
		Short: "Joins a chain, such as #papers or $private.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *node.Store) error {
				return s.Join(args[0])
			})
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "Lists joined chains.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *node.Store) error {
				chains, err := s.Chains()
				if err != nil {
					return err
				}
				for _, c := range chains {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			})
		},
	})
	return cmd
}

func (a *app) rateCommand() *cobra.Command {
	var chain, sign string
	cmd := &cobra.Command{
		Use:       "rate like|dislike <hash>",
		Short:     "Likes or dislikes a post, changing its reputation by one.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"like", "dislike"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *node.Store) error {
				rate := s.Like
				switch args[0] {
				case "like":
				case "dislike":
					rate = s.Dislike
				default:
					return errors.Errorf("unknown rating %q, expected like or dislike", args[0])
				}
				score, err := rate(chain, args[1], sign)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), score)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&chain, "chain", "c", "", "Chain of the post.")
	flags.StringVarP(&sign, "sign", "s", "", "User's private key.")
	cmd.MarkFlagRequired("chain")
	cmd.MarkFlagRequired("sign")
	return cmd
}
