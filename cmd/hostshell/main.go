// Package main provides the HostShell CLI application entry point.
// HostShell runs a small command interpreter inside an interactive host that
// owns prompts, color roles and the terminal title.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"hostshell/internal/config"
	"hostshell/internal/hosts"
	"hostshell/internal/interp"
	"hostshell/internal/logger"
	"hostshell/internal/theme"
	"hostshell/internal/version"
	"hostshell/pkg/hosttypes"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hostshell",
	Short: "HostShell - interactive host for a command interpreter",
	Long: `HostShell runs a line-oriented command interpreter inside an interactive host.
The host draws prompts, colors results by role and keeps the terminal title.`,
	Run: runShell,
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Run:   runShell,
}

// batchCmd evaluates a script file without prompting
var batchCmd = &cobra.Command{
	Use:   "batch <script>",
	Short: "Evaluate a script file in batch mode",
	Long: `Evaluate a script file without entering interactive mode.
The exit status is the code given to exit, 1 when the script fails, otherwise 0.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

// infoCmd describes the configured host
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the configured host",
	Run:   runInfo,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("kind", "", "Host kind (console|capture|null) [default: console]")
	flags.String("name", "", "Host name")
	flags.String("profile", "", "Host profile file applied on top of the built-in palette")
	flags.String("theme", "", "Palette file applied after the host is created")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("no-title", false, "Do not set the terminal title")
	flags.Bool("no-profile", false, "Do not load the host profile")
	flags.Bool("no-cancel", false, "Keep the shell running on SIGTERM")
	flags.Bool("prompt-marks", false, "Emit OSC 133 prompt marks for terminals that support them")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")

	bindings := map[string]string{
		config.KeyHostKind:        "kind",
		config.KeyHostName:        "name",
		config.KeyHostProfile:     "profile",
		config.KeyHostThemeFile:   "theme",
		config.KeyHostNoColor:     "no-color",
		config.KeyHostNoTitle:     "no-title",
		config.KeyHostNoProfile:   "no-profile",
		config.KeyHostNoCancel:    "no-cancel",
		config.KeyHostPromptMarks: "prompt-marks",
		config.KeyLogLevel:        "log-level",
		config.KeyLogFile:         "log-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	loaded, err := config.Load(viper.GetViper(), config.DefaultEnvFiles()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if err := logger.Configure(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// newSession creates an interpreter and the configured host bound to it.
func newSession(data func(hosttypes.Interpreter) hosttypes.HostData) (*interp.Interpreter, hosttypes.Host, error) {
	i := interp.New()
	h, err := hosts.GetGlobalRegistry().Create(cfg.Host.Kind, data(i))
	if err != nil {
		return nil, nil, err
	}
	i.SetHost(h)

	if cfg.Host.ThemeFile != "" {
		if err := applyThemeFile(h, cfg.Host.ThemeFile); err != nil {
			logger.Warn("Failed to apply theme", "file", cfg.Host.ThemeFile, "error", err)
		}
	}
	return i, h, nil
}

// untitledHostData is the configured host data for commands that do not own
// the terminal.
func untitledHostData(i hosttypes.Interpreter) hosttypes.HostData {
	data := cfg.HostData(i)
	data.Flags |= hosttypes.CreateFlagNoTitle
	return data
}

type paletteApplier interface {
	ApplyPalette(palette *theme.Palette) error
}

func applyThemeFile(h hosttypes.Host, path string) error {
	applier, ok := h.(paletteApplier)
	if !ok {
		return fmt.Errorf("host %s does not support palettes", h.Data().Name)
	}
	palette, err := theme.LoadFile(path)
	if err != nil {
		return err
	}
	return applier.ApplyPalette(palette)
}

func runShell(_ *cobra.Command, _ []string) {
	os.Exit(shell())
}

// shell runs the interactive loop and returns the process exit code.
func shell() int {
	logger.Info("Starting HostShell", "version", version.GetVersion(), "host", cfg.Host.Kind)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	var reader interp.LineReader = interp.NewScannerReader(os.Stdin)
	consoleOpts := []hosts.ConsoleOption{hosts.WithPromptMarks(cfg.Host.PromptMarks)}
	if interactive {
		rl, err := readline.NewEx(&readline.Config{
			HistoryFile:     historyFile(),
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			logger.Error("Failed to start line editor", "error", err)
			return 1
		}
		defer func() { _ = rl.Close() }()

		editor := newLineEditor(rl)
		consoleOpts = append(consoleOpts, hosts.WithOutput(editor), hosts.WithTerminal(os.Stdout))
		reader = editor
	}
	hosts.SetGlobalRegistry(hosts.NewDefaultRegistry(consoleOpts...))

	i, h, err := newSession(cfg.HostData)
	if err != nil {
		logger.Error("Failed to create host", "error", err)
		return 1
	}
	defer closeSession(i, h)

	if interactive {
		writeBanner(h)
	}

	ctx := context.Background()
	if !h.Data().NoCancel() {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, syscall.SIGTERM)
		defer stop()
	}

	code, err := i.Interactive(ctx, reader, !interactive)
	if err != nil {
		logger.Error("Shell stopped", "error", err)
	}
	return code
}

func runBatch(_ *cobra.Command, args []string) {
	scriptPath := args[0]
	logger.Info("Starting HostShell batch mode", "version", version.GetVersion(), "script", scriptPath)

	script, err := os.ReadFile(scriptPath)
	if err != nil {
		logger.Fatal("Failed to read script", "error", err)
	}

	i, h, err := newSession(untitledHostData)
	if err != nil {
		logger.Fatal("Failed to create host", "error", err)
	}

	code := i.RunScript(string(script))
	closeSession(i, h)
	logger.Debug("Script finished", "script", scriptPath, "code", code)
	os.Exit(code)
}

func runInfo(_ *cobra.Command, _ []string) {
	i, h, err := newSession(untitledHostData)
	if err != nil {
		logger.Fatal("Failed to create host", "error", err)
	}
	defer closeSession(i, h)

	out, err := renderInfo(h, hosts.GetGlobalRegistry().Kinds())
	if err != nil {
		logger.Fatal("Failed to render host information", "error", err)
	}
	fmt.Print(out)
}

func writeBanner(h hosttypes.Host) {
	title := h.DefaultTitle()
	if title == "" {
		return
	}
	if w, ok := h.(interface{ WriteRole(role, value string) bool }); ok {
		w.WriteRole("Banner", title)
		h.Write("\n")
		return
	}
	h.Write(title + "\n")
}

func closeSession(i *interp.Interpreter, h hosttypes.Host) {
	if err := h.Close(); err != nil {
		logger.Warn("Failed to close host", "error", err)
	}
	_ = i.Close()
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "hostshell")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
