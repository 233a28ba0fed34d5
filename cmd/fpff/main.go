package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	fpff "github.com/jasmaa/go-fpff"
)

const version = "1.0.0"

var (
	outputPath string
	methodName string
	logLevel   string
	logger     hclog.Logger
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:     "fpff",
		Short:   "Inspect, unpack, and compress FPFF containers",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:  "fpff",
				Level: hclog.LevelFromString(logLevel),
			})
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print container header and section table",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	unpackCmd := &cobra.Command{
		Use:   "unpack <file>",
		Short: "Export each section to a file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnpack,
	}
	unpackCmd.Flags().StringVarP(&outputPath, "output", "o", "out", "Output directory")

	packCmd := &cobra.Command{
		Use:   "pack <file.fpff>",
		Short: "Wrap a container in a compressed FPZ frame",
		Args:  cobra.ExactArgs(1),
		RunE:  runPack,
	}
	packCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .fpz path (required)")
	packCmd.Flags().StringVarP(&methodName, "method", "m", "zstd", "Compression method (none, zip, zstd, lz4, brotli)")
	if err := packCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}

	unwrapCmd := &cobra.Command{
		Use:   "unwrap <file.fpz>",
		Short: "Unwrap an FPZ frame back to a plain .fpff file",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnwrap,
	}
	unwrapCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .fpff path (required)")
	if err := unwrapCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(inspectCmd, unpackCmd, packCmd, unwrapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// decodeFile opens and decodes path, transparently unwrapping FPZ
// frames so every subcommand accepts both .fpff and .fpz inputs.
func decodeFile(path string) (*fpff.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".fpz") {
		return fpff.DecodeCompressed(f)
	}
	return fpff.Decode(f)
}

func runInspect(cmd *cobra.Command, args []string) error {
	c, err := decodeFile(args[0])
	if err != nil {
		return err
	}
	logger.Debug("decoded container", "path", args[0], "sections", c.Len())

	infos, err := c.Summary()
	if err != nil {
		return err
	}
	fmt.Printf("version:   %d\n", c.Version)
	fmt.Printf("timestamp: %d\n", c.Timestamp)
	fmt.Printf("author:    %s\n", c.Author)
	fmt.Printf("sections:  %d\n", c.Len())
	for _, info := range infos {
		fmt.Printf("  %3d  %-8s %8d bytes  xxh64=%016x\n", info.Index, info.Type, info.Size, info.Checksum)
	}
	return nil
}

func runUnpack(cmd *cobra.Command, args []string) error {
	c, err := decodeFile(args[0])
	if err != nil {
		return err
	}
	if err := fpff.Export(c, outputPath); err != nil {
		return err
	}
	logger.Info("unpacked container", "path", args[0], "sections", c.Len(), "dir", outputPath)
	return nil
}

func runPack(cmd *cobra.Command, args []string) error {
	comp, err := parseMethod(methodName)
	if err != nil {
		return err
	}
	c, err := decodeFile(args[0])
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := fpff.EncodeCompressed(&buf, c, comp); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Info("packed container", "method", comp, "in", args[0], "out", outputPath, "bytes", buf.Len())
	return nil
}

func runUnwrap(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := fpff.DecodeCompressed(f)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := fpff.Encode(&buf, c); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Info("unwrapped container", "in", args[0], "out", outputPath, "bytes", buf.Len())
	return nil
}

func parseMethod(name string) (fpff.Compression, error) {
	switch strings.ToLower(name) {
	case "none":
		return fpff.CompNone, nil
	case "zip":
		return fpff.CompZIP, nil
	case "zstd":
		return fpff.CompZSTD, nil
	case "lz4":
		return fpff.CompLZ4, nil
	case "brotli", "br":
		return fpff.CompBR, nil
	}
	return 0, fmt.Errorf("unknown compression method %q", name)
}
