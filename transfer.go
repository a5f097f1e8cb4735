package main

import (
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"seresa/node"
	"seresa/resource"
)

func (a *app) resourceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manages resources posting and downloading.",
	}
	cmd.AddCommand(a.uploadCommand(), a.downloadCommand())
	return cmd
}

func (a *app) uploadCommand() *cobra.Command {
	var chain, sign, title, file string
	var progress bool
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Uploads a resource to a chain, printing the hash of every chunk.",
		Long: `Uploads a resource to a chain in chunks of 80 KiB, printing the hash of
every chunk as soon as it is posted. The last hash printed addresses the
whole resource, download it with

    seresa resource download --uri fchs:<chain>:<last hash>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, src, err := openFileR(file)
			if err != nil {
				return err
			}
			defer src.Close()

			var r io.Reader = src
			bar := newUploadBar(cmd.ErrOrStderr(), size, progress)
			if bar != nil {
				r = io.TeeReader(src, bar)
			}

			return a.withStore(func(s *node.Store) error {
				hashes, err := resource.Upload(cmd.OutOrStdout(), r, s, chain, sign, title)
				if bar != nil {
					bar.Finish()
				}
				if err != nil {
					return err
				}
				log.WithFields(log.Fields{
					"chain":  chain,
					"size":   humanize.IBytes(uint64(size)),
					"chunks": len(hashes),
					"uri":    resource.Address{Chain: chain, Hash: hashes[len(hashes)-1]}.String(),
				}).Info("uploaded resource")
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&chain, "chain", "c", "", "Chain name to be used as base for operation.")
	flags.StringVarP(&sign, "sign", "s", "", "User's private key.")
	flags.StringVarP(&title, "title", "t", "", "Resource title.")
	flags.StringVarP(&file, "file", "f", "", "Filepath of uploaded resource.")
	flags.BoolVarP(&progress, "progress", "P", false, "Show upload progress on stderr.")
	cmd.MarkFlagRequired("chain")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) downloadCommand() *cobra.Command {
	var uri, output string
	var threshold int
	var progress bool
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Downloads a resource from its last chunk's URI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threshold") {
				a.cfg.Threshold = threshold
			}

			w := cmd.OutOrStdout()
			if output != "" && output != stdioPath {
				dst, err := os.Create(output)
				if err != nil {
					return err
				}
				defer dst.Close()
				w = dst
			}

			return a.withStore(func(s *node.Store) error {
				d := &resource.Downloader{Network: s, Gate: a.cfg.gate()}
				var obs *chunkProgress
				if progress {
					obs = &chunkProgress{w: cmd.ErrOrStderr()}
					d.Observer = obs
					defer obs.finish()
				}
				counter := &countingWriter{w: w}
				if err := d.Download(counter, uri); err != nil {
					return err
				}
				log.WithFields(log.Fields{
					"uri":  uri,
					"size": humanize.IBytes(uint64(counter.n)),
				}).Info("downloaded resource")
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&uri, "uri", "u", "", "URI of the last chunk of the resource.")
	flags.StringVarP(&output, "output", "o", stdioPath, "Output file. If '-' or not present, prints on stdout.")
	flags.IntVar(&threshold, "threshold", resource.DefaultThreshold, "Lowest trusted chunk reputation, overrides the config file.")
	flags.BoolVarP(&progress, "progress", "P", false, "Show download progress on stderr.")
	cmd.MarkFlagRequired("uri")
	return cmd
}

func openFileR(path string) (int64, *os.File, error) {
	srcInfo, err := os.Stat(path)
	if err != nil {
		return 0, nil, err
	}
	if srcInfo.IsDir() {
		return 0, nil, errors.Errorf("%s is a directory", path)
	}

	srcFile, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}

	return srcInfo.Size(), srcFile, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
