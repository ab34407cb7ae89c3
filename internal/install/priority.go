package install

import (
	"strings"

	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/priority"
	"github.com/conn-castle/cc-spec/internal/steps"
)

// configurePriority writes the companion priority config. Every failure is a warning.
func (inst *installer) configurePriority() []steps.Result {
	var results []steps.Result
	available := priority.GetAvailableProviders(inst.sys, inst.paths.ProviderRegistry)
	if available.Warning != "" {
		results = append(results, steps.Warnf(steps.Providers, "%s", available.Warning))
	}

	order := priority.DefaultOrder()
	var selections map[string]string
	if inst.interactive() {
		selection, err := inst.prompter.SelectPriority(order, available.Providers)
		if err != nil {
			results = append(results, steps.Warnf(steps.Priority, messages.InstallPriorityPromptCancelled))
		} else {
			order = selection.Order
			selections = selection.Providers
		}
	}

	entries := priority.BuildPriorityConfig(order, selections, available.Providers)
	text, err := priority.GenerateConfigYAML(entries)
	if err != nil {
		return append(results, steps.Warnf(steps.Priority, messages.InstallPriorityFailedFmt, err))
	}
	if err := priority.WriteUserConfig(inst.sys, inst.paths.UserConfig, text); err != nil {
		return append(results, steps.Warnf(steps.Priority, messages.InstallPriorityFailedFmt, err))
	}
	res := steps.OKf(steps.Priority, messages.InstallPriorityWrittenFmt, inst.paths.UserConfig).WithDetails(strings.Split(priority.Summary(entries), "\n")...)
	return append(results, res)
}
