package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"covannot/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
	color    bool
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show covannot build fingerprints",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("hash", false, "include git commit hash")
	cmd.Flags().Bool("date", false, "include build timestamp")
	cmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showHash, err := cmd.Flags().GetBool("hash")
	if err != nil {
		return fmt.Errorf("failed to get hash flag: %w", err)
	}
	showDate, err := cmd.Flags().GetBool("date")
	if err != nil {
		return fmt.Errorf("failed to get date flag: %w", err)
	}
	showFull, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}
	colorStr, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(colorStr)
	if err != nil {
		return err
	}

	opts := versionOptions{
		format:   strings.ToLower(strings.TrimSpace(format)),
		showHash: showHash || showFull,
		showDate: showDate || showFull,
		color:    shouldColor(mode, cmd.OutOrStdout()),
	}

	info := collectVersionInfo()
	switch opts.format {
	case "json":
		return renderVersionJSON(cmd.OutOrStdout(), info, opts)
	case "pretty":
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "covannot %s\n", version.Colored(info.Version, opts.color))
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "covannot",
		Version: info.Version,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
