package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/sai/internal/config"
	"github.com/amirbrooks/sai/internal/session"
	"github.com/amirbrooks/sai/internal/store"
	"github.com/amirbrooks/sai/internal/task"
	"github.com/amirbrooks/sai/internal/ui"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitInternal = 10
)

type GlobalFlags struct {
	ConfigPath string
	DataFile   string
	Atomic     bool
	NoColor    bool
	Verbose    bool
}

// exitError carries the process exit code out of a cobra RunE.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

// Run executes the CLI and returns the process exit code.
func Run(args []string) int {
	return run(args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(stderr, "sai:", err)
	return ExitUsage
}

func newRootCmd() *cobra.Command {
	gf := &GlobalFlags{}
	root := &cobra.Command{
		Use:   "sai [command]",
		Short: "Keep track of todos, deadlines and events",
		Long: `sai keeps a task list in a plain text file.

With no arguments it reads commands from stdin until "bye".
With arguments it runs them as a single command and exits.

Commands:
  todo <description>
  deadline <description> /by <date>
  event <description> /from <date> /to <date>
  list
  mark <n> | unmark <n> | delete <n>
  find <keyword>
  bye

Dates: yyyy-MM-dd HHmm, yyyy-MM-dd, d/M/yyyy HHmm, d/M/yyyy`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, gf)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "sai:", err)
				return &exitError{code: ExitInternal}
			}
			if len(args) == 0 {
				return env.loop(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return env.once(strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.ConfigPath, "config", "", "Config file (default: ~/.sai/config.yaml or SAI_CONFIG)")
	pf.StringVar(&gf.DataFile, "file", "", "Task data file (default: ./data/sai.txt or SAI_DATA_FILE)")
	pf.BoolVar(&gf.Atomic, "atomic", false, "Save through a temp file and rename")
	pf.BoolVar(&gf.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&gf.Verbose, "verbose", false, "Log load/save diagnostics to stderr")

	// Everything after the first command word belongs to the command line,
	// including things that look like flags.
	root.Flags().SetInterspersed(false)

	root.AddCommand(newConfigCmd(gf))
	return root
}

func resolveConfig(cmd *cobra.Command, gf *GlobalFlags) (config.Config, string, error) {
	path := strings.TrimSpace(gf.ConfigPath)
	if path == "" {
		path = config.Path()
	}
	path = config.ExpandHome(path)
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}
	flags := cmd.Flags()
	if flags.Changed("file") && strings.TrimSpace(gf.DataFile) != "" {
		cfg.DataFile = config.ExpandHome(strings.TrimSpace(gf.DataFile))
	}
	if flags.Changed("atomic") {
		cfg.AtomicWrites = gf.Atomic
	}
	if gf.NoColor {
		cfg.Color = false
	}
	return cfg, path, nil
}

func newConfigCmd(gf *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := resolveConfig(cmd, gf)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "config:", err)
				return &exitError{code: ExitInternal}
			}
			b, err := config.Marshal(cfg)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "config:", err)
				return &exitError{code: ExitInternal}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", path)
			_, _ = out.Write(b)
			return nil
		},
	}
}

type env struct {
	session  *session.Session
	renderer *ui.Renderer
}

func openEnv(cmd *cobra.Command, gf *GlobalFlags) (*env, error) {
	cfg, _, err := resolveConfig(cmd, gf)
	if err != nil {
		return nil, err
	}
	diag := log.New(io.Discard, "", 0)
	if gf.Verbose {
		diag = log.New(cmd.ErrOrStderr(), "sai: ", 0)
	}
	st := store.New(cfg.DataFile,
		store.WithLogger(diag),
		store.WithAtomicWrites(cfg.AtomicWrites),
	)
	list, warnings, err := st.Load()
	if err != nil {
		return nil, err
	}
	r := ui.New(cfg.Color)
	if len(warnings) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), r.Warnings(warnings))
	}
	diag.Printf("loaded %d tasks from %s", list.Len(), st.Path())
	return &env{session: session.New(list, st, diag), renderer: r}, nil
}

// loop reads one command per line until bye or end of input.
func (e *env) loop(in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, e.renderer.Welcome())
	br := bufio.NewReader(in)
	for {
		line, rerr := br.ReadString('\n')
		if line != "" {
			res, err := e.session.Execute(strings.TrimRight(line, "\r\n"))
			e.print(out, out, res, err)
			if res.Kind == session.ResultBye && err == nil {
				return nil
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			fmt.Fprintln(out, e.renderer.Error(rerr))
			return &exitError{code: ExitInternal}
		}
	}
	fmt.Fprintln(out, e.renderer.Goodbye())
	return nil
}

func (e *env) once(line string, out, errOut io.Writer) error {
	res, err := e.session.Execute(line)
	e.print(out, errOut, res, err)
	if err != nil {
		return &exitError{code: exitCode(err)}
	}
	return nil
}

func (e *env) print(out, errOut io.Writer, res session.Result, err error) {
	if s := e.renderer.Result(res); s != "" {
		fmt.Fprintln(out, s)
	}
	if err != nil {
		fmt.Fprintln(errOut, e.renderer.Error(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, task.ErrIndex):
		return ExitNotFound
	case errors.Is(err, store.ErrWrite):
		return ExitInternal
	default:
		return ExitUsage
	}
}
