// Command b64 encodes and decodes Base64 from the command line using
// the codec's dialects.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iXeor/suricata/base64"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "b64",
		Short:         "encode and decode Base64 under several dialects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newEncodeCmd(), newDecodeCmd())
	return cmd
}

func newEncodeCmd() *cobra.Command {
	mode := modeFlag(base64.ModeStrict)
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "encode a file or stdin to Base64",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}
			dst := make([]byte, base64.EncodeBufferSize(uint64(len(src))))
			n, err := base64.Encode(dst, src, base64.Mode(mode))
			if err != nil {
				return err
			}
			// Drop the NUL sentinel for terminal output.
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(dst[:n]))
			return err
		},
	}
	cmd.Flags().Var(&mode, "mode", "encoding dialect (strict or nopad)")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	mode := modeFlag(base64.ModeRFC4648)
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "decode Base64 from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(args)
			if err != nil {
				return err
			}
			src = bytes.TrimRight(src, "\r\n")
			dst := make([]byte, base64.DecodeBufferSize(uint32(len(src))))
			n := base64.Decode(dst, src, base64.Mode(mode))
			if n == 0 && len(src) > 0 {
				return fmt.Errorf("decode: no decodable data in %d input bytes", len(src))
			}
			_, err = cmd.OutOrStdout().Write(dst[:n])
			return err
		},
	}
	cmd.Flags().Var(&mode, "mode", "decoding dialect (rfc2045, strict, rfc4648, nopad or padopt)")
	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
