package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hashicorp/go-hclog"
	syscallmd "github.com/shdnx/linux-syscallmd"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

type options struct {
	arch    string
	format  string
	kernel  string
	output  string
	exact   bool
	verbose bool
}

func addFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.format, "format", "f", "", "Format of the output (Values: 'header', 'json', 'table')")
	fs.StringVarP(&o.arch, "arch", "a", "", "Architecture whose calling convention is shown (Values: 'arm', 'x86', 'x64')")
	fs.StringVarP(&o.kernel, "kernel", "k", "", "Fetch syscalls.h for this Linux kernel git tag instead of reading a headers tree (Example: 'v6.0')")
	fs.StringVarP(&o.output, "output", "o", "", "Write the output to this file instead of stdout")
	fs.BoolVarP(&o.exact, "exact", "e", false, "Narrow the search to only syscalls that match the queries exactly")
	fs.BoolVar(&o.verbose, "verbose", false, "Log what is being parsed")
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var o options

	rootCmd := &cobra.Command{
		Use:   "syscallmd [options...] [<linux-headers-dir>] [<query>...]",
		Short: "Extract syscall signatures from include/linux/syscalls.h",
		Long: `syscallmd parses the system call declarations in include/linux/syscalls.h and
writes them out as an X-macro header (SYSCALL_SIGNATURE, SYSCALL_PARAM,
SYSCALL_END), as JSON or as a table.

The first argument is the root of a kernel headers tree, e.g.
/usr/src/linux-headers-6.1.0. With --kernel the header is downloaded for that
git tag instead and every argument is a query. Without either, the version in
~/.syscallmd/config.yaml is downloaded.

Queries select syscalls by name; --exact makes them match whole names.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := o.run(args, out, errOut)
			if errors.Is(err, errUsage) {
				cmd.Usage()
			}
			return err
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	addFlags(rootCmd.Flags(), &o)
	return rootCmd
}

var errUsage = errors.New("invalid usage")

func validateArgs(version, arch, format string, find []string, exact bool) error {
	if exact && len(find) == 0 {
		return fmt.Errorf("%w: --exact provided but no search query was supplied", errUsage)
	}

	if version != "" && version[0] != 'v' {
		return fmt.Errorf("%w: invalid kernel version: %q", errUsage, version)
	}

	if _, err := syscallmd.ConventionFor(syscallmd.Architecture(arch)); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	switch format {
	case header, json, table:
	default:
		return fmt.Errorf("%w: unknown format specified: %q", errUsage, format)
	}

	return nil
}

func (o *options) run(args []string, out, errOut io.Writer) error {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "syscallmd",
		Level:  hclog.Info,
		Output: errOut,
	})

	if err := o.setup(logger, args, out); err != nil {
		logger.Error("failed to generate syscall metadata", "error", err)
		return err
	}
	return nil
}

func (o *options) setup(logger hclog.Logger, args []string, out io.Writer) error {
	cfgDir, err := configDir()
	if err != nil {
		return err
	}
	if err := createDirs(cfgDir); err != nil {
		return err
	}

	cfg, err := getOrCreateConfigFile(cfgDir)
	if err != nil {
		return err
	}
	o.applyDefaults(cfg)

	if o.verbose {
		logger.SetLevel(hclog.Debug)
	}
	return o.execute(logger, cfgDir, cfg, args, out)
}

func (o *options) execute(logger hclog.Logger, cfgDir string, cfg config, args []string, out io.Writer) error {
	var root string
	queries := args
	switch {
	case o.kernel != "":
	case len(args) > 0:
		root, queries = args[0], args[1:]
	default:
		o.kernel = cfg.Version
	}

	if err := validateArgs(o.kernel, o.arch, o.format, queries, o.exact); err != nil {
		return err
	}

	if root == "" {
		fetched, err := fetchHeaders(http.DefaultClient, logger, cfgDir, o.kernel)
		if err != nil {
			return err
		}
		root = fetched
	}

	logger.Debug("loading syscalls", "header", syscallmd.HeaderPath(root))
	calls, err := syscallmd.LoadFromHeaders(root, syscallmd.WithLogger(logger.Named("parser")))
	if err != nil {
		return err
	}

	var opts []syscallmd.FilterOpt
	if o.exact {
		opts = append(opts, syscallmd.WithExactMatch(queries))
	} else if len(queries) > 0 {
		opts = append(opts, syscallmd.WithFindSubstrings(queries))
	}
	calls, err = syscallmd.Filter(calls, opts...)
	if err != nil {
		return err
	}

	if o.output == "" {
		if err := o.write(out, calls); err != nil {
			return err
		}
	} else {
		f, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", o.output, err)
		}
		if err := o.write(f, calls); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %q: %w", o.output, err)
		}
	}

	logger.Debug("wrote syscalls", "count", len(calls), "format", o.format)
	return nil
}

func (o *options) write(w io.Writer, calls []syscallmd.SystemCall) error {
	arch := syscallmd.Architecture(o.arch)
	switch o.format {
	case json:
		return syscallmd.WriteJSON(w, arch, calls)
	case table:
		return syscallmd.WriteTable(w, arch, calls)
	}
	return syscallmd.EmitHeader(w, calls)
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		return 1
	}
	return 0
}
