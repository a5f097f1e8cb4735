package main

import (
	"io"

	"github.com/spf13/cobra"

	"seresa/node"
	"seresa/resource"
	"seresa/share"
)

func (a *app) shareCommand() *cobra.Command {
	var chain string
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Manages and searches share forum posts.",
	}
	cmd.PersistentFlags().StringVarP(&chain, "chain", "c", "", "Chain name to be used as base for operation.")
	cmd.MarkPersistentFlagRequired("chain")

	var sign string
	var article share.Article
	post := &cobra.Command{
		Use:   "post",
		Short: "Shares research URI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *node.Store) error {
				_, err := share.Post(cmd.OutOrStdout(), s, chain, sign, article)
				return err
			})
		},
	}
	flags := post.Flags()
	flags.StringVarP(&sign, "sign", "s", "", "User's private key.")
	flags.StringVarP(&article.Title, "title", "t", "", "Article's title.")
	flags.StringArrayVarP(&article.Authors, "author", "a", nil, "Article's author, may be repeated.")
	flags.StringArrayVar(&article.Tags, "tag", nil, "Article's tag, may be repeated.")
	flags.StringVarP(&article.URI, "uri", "u", "", "Article's URI.")
	post.MarkFlagRequired("title")
	post.MarkFlagRequired("uri")

	var terms []string
	search := &cobra.Command{
		Use:   "search",
		Short: "Searches research papers on chain, ignoring case.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *node.Store) error {
				_, err := share.Search(cmd.OutOrStdout(), s, chain, terms)
				return err
			})
		},
	}
	search.Flags().StringArrayVarP(&terms, "string", "s", nil, "String to be searched on article's fields, may be repeated.")
	search.MarkFlagRequired("string")

	cmd.AddCommand(post, search,
		a.articleField("get-uri", "Gets article's URI from a shared post.", &chain, share.URI),
		a.articleField("get-title", "Gets article's title from a shared post.", &chain, share.Title),
	)
	return cmd
}

type fieldPrinter func(w io.Writer, n resource.Network, chain, hash string) error

func (a *app) articleField(use, short string, chain *string, printField fieldPrinter) *cobra.Command {
	var hash string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *node.Store) error {
				return printField(cmd.OutOrStdout(), s, *chain, hash)
			})
		},
	}
	cmd.Flags().StringVarP(&hash, "hash", "H", "", "Post's hash.")
	cmd.MarkFlagRequired("hash")
	return cmd
}
