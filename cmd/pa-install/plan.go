package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/planarally/pa-installer/internal/install"
	"github.com/planarally/pa-installer/internal/messages"
)

func newPlanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settingsPath, err := resolveSettingsPath(flags)
			if err != nil {
				return err
			}
			settings, err := loadSettings(settingsPath, flags)
			if err != nil {
				return err
			}
			raw := strings.TrimSpace(flags.dir)
			if raw == "" {
				raw = suggestedDir(settings, settingsPath)
			}
			expanded, err := homedir.Expand(raw)
			if err != nil {
				return err
			}
			dir, err := filepath.Abs(expanded)
			if err != nil {
				return err
			}
			plan, err := install.NewPlan(install.NewConfiguration(dir), install.OptionsFromSettings(settings))
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}

// printPlan writes the steps and child commands of plan without running anything.
func printPlan(out io.Writer, plan install.Plan) {
	cfg := plan.Config
	_, _ = fmt.Fprintf(out, messages.PlanHeaderFmt, cfg.InstallDir, cfg.OS, cfg.Arch)
	for i, step := range install.Steps(plan) {
		_, _ = fmt.Fprintf(out, messages.PlanStepFmt, i+1, step.Describe())
	}
	_, _ = fmt.Fprintf(out, messages.PlanRuntimeURLFmt, plan.RuntimeURL)
	_, _ = fmt.Fprintf(out, messages.PlanRuntimeFileFmt, plan.InstallerPath)
	_, _ = fmt.Fprintf(out, messages.PlanInterpreterFmt, plan.Interpreter)
	_, _ = fmt.Fprintf(out, messages.PlanArchiveURLFmt, plan.ArchiveURL)
	_, _ = fmt.Fprintf(out, messages.PlanArchiveFilterFmt, strings.Join(plan.ArchiveFilter(messages.PlanArchivePrefix), ", "))
	_, _ = fmt.Fprintln(out, messages.PlanCommandsHeader)
	for _, c := range plan.Commands(messages.PlanArchivePrefix) {
		_, _ = fmt.Fprintf(out, messages.PlanCommandFmt, c.String())
	}
}
