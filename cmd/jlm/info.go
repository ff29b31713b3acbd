// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jlm-cli/internal/app"
)

// Output formats of `jlm info`.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// ErrInvalidFormat is returned for an unknown --format value.
var ErrInvalidFormat = errors.New("invalid output format")

func newInfoCommand(inv *invocation) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print information about the jlm setup",
		Args:  cobra.NoArgs,
		RunE: inv.run(func(cmd *cobra.Command, _ []string, a *app.Application) error {
			info, err := a.Info()
			if err != nil {
				return err
			}
			return writeInfo(cmd.OutOrStdout(), info, format)
		}),
	}
	cmd.Flags().StringVar(&format, "format", formatText, "output format (text, json, yaml)")

	return cmd
}

func writeInfo(w io.Writer, info *app.Info, format string) error {
	switch format {
	case formatText:
		writeInfoText(w, info)
		return nil
	case formatJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q (valid: %s, %s, %s)", ErrInvalidFormat, format, formatText, formatJSON, formatYAML)
	}
}

func writeInfoText(w io.Writer, info *app.Info) {
	localDir := info.LocalDir
	if localDir == "" {
		localDir = SubtitleStyle.Render("(not found)")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("`.jlm` directory:"))
	fmt.Fprintln(w, localDir)
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Default Julia runtime:"))
	fmt.Fprintln(w, styleSummary(info.Default.Summary()))
	if len(info.Others) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Other runtime(s):"))
	for _, rt := range info.Others {
		fmt.Fprintln(w, styleSummary(rt.Summary()))
	}
}

// styleSummary highlights the labels of a runtime summary.
func styleSummary(summary string) string {
	lines := strings.Split(summary, "\n")
	for i, line := range lines {
		if label, value, ok := strings.Cut(line, ":"); ok {
			lines[i] = CmdStyle.Render(label+":") + value
		}
	}
	return strings.Join(lines, "\n")
}
