package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/danieljhkim/nitf-rename/internal/config"
	"github.com/danieljhkim/nitf-rename/internal/engine"
	"github.com/danieljhkim/nitf-rename/internal/fsops"
	"github.com/danieljhkim/nitf-rename/internal/vcs"
)

var (
	version = "dev"

	// Colors for help output sections
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// vcsValue adapts vcs.Mode to pflag so bad values fail at parse time.
type vcsValue vcs.Mode

var _ pflag.Value = (*vcsValue)(nil)

func (v *vcsValue) String() string { return string(*v) }

func (v *vcsValue) Set(s string) error {
	m, err := vcs.ParseMode(s)
	if err != nil {
		return err
	}
	*v = vcsValue(m)
	return nil
}

func (v *vcsValue) Type() string {
	names := make([]string, len(vcs.Modes))
	for i, m := range vcs.Modes {
		names[i] = string(m)
	}
	return "{" + strings.Join(names, ",") + "}"
}

// newRootCmd builds the nitf-rename command with its own option set.
func newRootCmd() *cobra.Command {
	opts := config.Default()

	cmd := &cobra.Command{
		Use:     "nitf-rename [flags] SEARCH_PATH...",
		Version: version,
		Short:   "Rename files by editing their names in a text editor",
		Long: `nitf-rename lists the files found in the search paths, one per line, and
opens the listing in your editor. Edit the names, save and quit: each line is
matched to the file at the same position and the files are moved accordingly.

Lines must not be added, removed or reordered. If the edited listing would
lose data (two files with the same new name, or a new name that already
exists) the problems are listed and the editor is opened again.`,
		Example: `  nitf-rename --editor "vim {file}" .
  nitf-rename --editor "code --wait {file}" --recursive --vcs auto src/`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SearchPaths = args
			return run(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetHelpFunc(customHelpFunc)

	flags := cmd.Flags()
	flags.StringVar(&opts.Editor, "editor", "", "Editor command, must contain {file} (default $"+config.EnvEditor+")")
	flags.BoolVar(&opts.Quiet, "quiet", false, "Only print errors and the summary on error")
	flags.BoolVar(&opts.Overwrite, "overwrite", false, "Allow replacing existing files")
	flags.BoolVar(&opts.Recursive, "recursive", false, "Descend into subdirectories")
	flags.BoolVar(&opts.Flatten, "flatten", false, "Only edit file names; files stay in their directory")
	flags.BoolVar(&opts.PruneEmpty, "prune-empty", false, "Remove source directories left empty")
	flags.Var((*vcsValue)(&opts.VCS), "vcs", "Move files with a version control tool")
	flags.StringVar(&opts.IncludeFiles, "include-files", "", "Only list file names matching this regex (case-insensitive)")
	flags.StringVar(&opts.ExcludeFiles, "exclude-files", config.DefaultExclude, "Skip file names matching this regex (case-insensitive)")

	_ = cmd.RegisterFlagCompletionFunc("vcs", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(vcs.Modes))
		for i, m := range vcs.Modes {
			names[i] = string(m)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func run(cmd *cobra.Command, opts *config.Options) error {
	opts.ApplyEnv()
	validated, err := opts.Validate()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	reporter := newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), opts.Quiet)
	eng := engine.New(fsops.NewRealFS(), vcs.ExecRunner{})

	result, err := eng.Rename(ctx, &engine.RenameRequest{
		SearchPaths: opts.SearchPaths,
		Filter:      validated.Filter,
		Flatten:     opts.Flatten,
		Overwrite:   opts.Overwrite,
		PruneEmpty:  opts.PruneEmpty,
		VCS:         opts.VCS,
		Editor:      validated.Editor,
		Reporter:    reporter,
	})
	if err != nil {
		return err
	}

	if result.Collected == 0 {
		PrintEmptyState(cmd.OutOrStdout(), "No files found.")
		return nil
	}
	if result.Canceled {
		PrintWarning(cmd.ErrOrStderr(), "Canceled, nothing was renamed.")
		return nil
	}

	reporter.Summary(result)
	if !result.OK() {
		return engine.ErrRenameFailed
	}
	return nil
}

// customHelpFunc prints help with colored section titles
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	if cmd.HasExample() {
		help.WriteString(sectionTitleColor.Sprint("Examples:"))
		help.WriteString("\n")
		help.WriteString(cmd.Example)
		help.WriteString("\n\n")
	}

	if cmd.HasAvailableLocalFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Execute runs nitf-rename and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	// The summary has already been printed.
	if !errors.Is(err, engine.ErrRenameFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
	}
	return 1
}
