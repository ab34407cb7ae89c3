// Package install implements the install, update, uninstall, and status operations.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/conn-castle/cc-spec/internal/bundle"
	"github.com/conn-castle/cc-spec/internal/companion"
	"github.com/conn-castle/cc-spec/internal/config"
	"github.com/conn-castle/cc-spec/internal/fsutil"
	"github.com/conn-castle/cc-spec/internal/language"
	"github.com/conn-castle/cc-spec/internal/messages"
	"github.com/conn-castle/cc-spec/internal/platform"
	"github.com/conn-castle/cc-spec/internal/skills"
	"github.com/conn-castle/cc-spec/internal/state"
	"github.com/conn-castle/cc-spec/internal/steps"
)

var (
	// ErrBundleMissing is returned when the bundle has no tree for the effective language.
	ErrBundleMissing = bundle.ErrNotFound
	// ErrCancelled is returned when the user backs out of a prompt. It is not a failure.
	ErrCancelled = errors.New(messages.InstallCancelled)
	// ErrConfirmationRequired is returned when uninstall runs without a terminal or an override.
	ErrConfirmationRequired = errors.New(messages.UninstallConfirmationRequired)
	// ErrCompanionRequired is returned when the user declines installing the missing companion.
	ErrCompanionRequired = companion.ErrRequired
)

// Options controls installer behavior.
type Options struct {
	Env config.Env
	// Paths defaults to config.DefaultPaths(Env) when InstallRoot is empty.
	Paths config.Paths
	// Language is the explicitly requested language. Empty means detect.
	Language language.Language
	Force    bool
	// OverwriteRoles replaces existing companion roles without asking.
	OverwriteRoles     bool
	SkipCompanionCheck bool
	// Version is recorded in the metadata files.
	Version  string
	Bundle   *bundle.Source
	Gateway  companion.Gateway
	Prompter Prompter
	System   System
	// Out receives progress lines; WarnWriter receives warnings. Both default to os.Stderr.
	Out        io.Writer
	WarnWriter io.Writer
	Now        func() time.Time
}

// Report summarizes an operation.
type Report struct {
	Mode        Mode
	Language    language.Language
	InstallRoot string
	BackupPath  string
	Restored    bool
	Removed     []string
	Steps       []steps.Result
}

// Warnings returns the steps that need attention.
func (r Report) Warnings() []steps.Result {
	return steps.Attention(r.Steps)
}

type installer struct {
	env        config.Env
	paths      config.Paths
	sys        System
	bundle     *bundle.Source
	manifest   bundle.Manifest
	gateway    companion.Gateway
	prompter   Prompter
	out        io.Writer
	warnWriter io.Writer
	now        func() time.Time
	opts       Options
	report     Report
}

func newInstaller(opts Options) (*installer, error) {
	if opts.System == nil {
		return nil, fmt.Errorf(messages.InstallSystemRequired)
	}
	paths := opts.Paths
	if paths.InstallRoot == "" {
		paths = config.DefaultPaths(opts.Env)
	}
	manifest := bundle.DefaultManifest()
	if opts.Bundle != nil {
		manifest = opts.Bundle.Manifest()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	inst := &installer{
		env:        opts.Env,
		paths:      paths,
		sys:        opts.System,
		bundle:     opts.Bundle,
		manifest:   manifest,
		gateway:    opts.Gateway,
		prompter:   opts.Prompter,
		out:        opts.Out,
		warnWriter: opts.WarnWriter,
		now:        now,
		opts:       opts,
	}
	inst.report.InstallRoot = paths.InstallRoot
	return inst, nil
}

// Install installs or refreshes the bundle in the install root.
func Install(ctx context.Context, opts Options) (Report, error) {
	if opts.Bundle == nil {
		return Report{}, fmt.Errorf(messages.InstallBundleRequired)
	}
	if !opts.SkipCompanionCheck && opts.Gateway == nil {
		return Report{}, fmt.Errorf(messages.CompanionGatewayRequired)
	}
	inst, err := newInstaller(opts)
	if err != nil {
		return Report{}, err
	}
	err = inst.install(ctx)
	return inst.report, err
}

// Update is Install with Force set. The installed language is kept unless one is requested.
func Update(ctx context.Context, opts Options) (Report, error) {
	opts.Force = true
	return Install(ctx, opts)
}

func (inst *installer) install(ctx context.Context) error {
	root := inst.paths.InstallRoot
	current := ReadState(inst.sys, root, inst.manifest.Hints())
	mode := current.Mode()
	inst.report.Mode = mode

	lang, err := inst.resolveLanguage(current)
	if err != nil {
		return err
	}
	inst.report.Language = lang

	tree, err := inst.bundle.Open(lang)
	if err != nil {
		return err
	}

	switch mode {
	case ModeAdopt:
		inst.record(inst.backupExisting())
	case ModeUpgrade:
		inst.infof(messages.InstallUpgradeMode)
	default:
		inst.infof(messages.InstallFreshMode)
	}

	inst.record(inst.configurePriority()...)

	if err := inst.sys.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFailedFmt, root, err)
	}
	stats, err := fsutil.CopyFS(inst.sys, tree, root, nil)
	if err != nil {
		return fmt.Errorf(messages.InstallCopyFailedFmt, lang, root, err)
	}
	inst.record(steps.OKf(steps.Copy, messages.InstallCopiedFmt, stats.Files, lang, root))
	inst.record(lintSkills(tree))

	if !platform.IsWindows(inst.env.GOOS) {
		inst.record(inst.markExecutable())
	}

	if inst.opts.SkipCompanionCheck {
		inst.record(steps.Skipf(steps.Companion, messages.InstallCompanionSkipped))
	} else if err := inst.ensureCompanion(ctx, tree); err != nil {
		return err
	}

	rec := state.VersionRecord{
		Version:     inst.opts.Version,
		Language:    string(lang),
		InstalledAt: state.FormatTime(inst.now()),
	}
	if err := state.WriteVersionRecord(inst.sys, root, rec); err != nil {
		return fmt.Errorf(messages.InstallWriteVersionFailedFmt, err)
	}
	return nil
}

// resolveLanguage picks the effective language. An existing install keeps its language unless
// a different one is requested explicitly and either Force is set or the user agrees to switch.
func (inst *installer) resolveLanguage(current InstallState) (language.Language, error) {
	requested := inst.opts.Language
	explicit := requested != ""
	if !explicit {
		requested = language.DetectSystemLanguage(inst.env.Locale, inst.env.LocaleErr)
	}
	if current.Language == "" {
		if !explicit {
			inst.infof(messages.InstallLanguageDetectedFmt, requested)
		}
		return requested, nil
	}
	if !explicit || requested == current.Language {
		inst.infof(messages.InstallLanguageExistingFmt, current.Language)
		return current.Language, nil
	}
	if inst.opts.Force {
		inst.infof(messages.InstallLanguageSwitchFmt, current.Language, requested)
		return requested, nil
	}
	if inst.interactive() {
		choice, err := inst.prompter.ChooseLanguage(current.Language, requested)
		if err != nil {
			return "", err
		}
		switch choice {
		case LanguageKeep:
			return current.Language, nil
		case LanguageSwitch:
			return requested, nil
		default:
			return "", ErrCancelled
		}
	}
	inst.warnf(messages.InstallLanguageKeptFmt, current.Language, requested, requested)
	return current.Language, nil
}

func (inst *installer) ensureCompanion(ctx context.Context, tree fs.FS) error {
	res, err := companion.Ensure(ctx, companion.EnsureOptions{
		Gateway:     inst.gateway,
		Interactive: inst.interactive(),
		Prompter:    inst.prompter,
	})
	if res.Step != "" {
		inst.record(res.Result)
	}
	if err != nil {
		return err
	}
	if res.Installed {
		inst.record(companion.SeedRoles(companion.SeedOptions{
			System:      inst.sys,
			Bundle:      tree,
			RoleDir:     inst.paths.CompanionRoleDir,
			Force:       inst.opts.OverwriteRoles,
			Interactive: inst.interactive(),
			Prompter:    inst.prompter,
		}))
	}
	return nil
}

// lintSkills reports skill frontmatter problems in the installed tree. Findings never fail an install.
func lintSkills(tree fs.FS) steps.Result {
	findings, err := skills.Lint(tree)
	if err != nil {
		return steps.Warnf(steps.Skills, messages.InstallSkillsLintFailedFmt, err)
	}
	if len(findings) == 0 {
		return steps.OKf(steps.Skills, messages.InstallSkillsClean)
	}
	details := make([]string, 0, len(findings))
	for _, f := range findings {
		details = append(details, f.String())
	}
	return steps.Warnf(steps.Skills, messages.InstallSkillsFindingsFmt, len(findings)).WithDetails(details...)
}

func (inst *installer) interactive() bool {
	return inst.env.CanPrompt() && inst.prompter != nil
}

func (inst *installer) exists(path string) bool {
	_, err := inst.sys.Lstat(path)
	return err == nil
}

func (inst *installer) record(results ...steps.Result) {
	for _, res := range results {
		inst.report.Steps = append(inst.report.Steps, res)
		if res.NeedsAttention() {
			_, _ = fmt.Fprintln(inst.warnOutput(), res.String())
		}
	}
}

func (inst *installer) infof(format string, args ...any) {
	_, _ = fmt.Fprintf(inst.output(), format+"\n", args...)
}

func (inst *installer) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(inst.warnOutput(), format+"\n", args...)
}

func (inst *installer) output() io.Writer {
	if inst.out == nil {
		return os.Stderr
	}
	return inst.out
}

func (inst *installer) warnOutput() io.Writer {
	if inst.warnWriter == nil {
		return os.Stderr
	}
	return inst.warnWriter
}
