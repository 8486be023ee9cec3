// cmd/devbootstrap/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sys/windows"
	"gopkg.in/yaml.v3"

	"github.com/windowsadmins/devbootstrap/pkg/blocking"
	"github.com/windowsadmins/devbootstrap/pkg/config"
	"github.com/windowsadmins/devbootstrap/pkg/envfile"
	"github.com/windowsadmins/devbootstrap/pkg/logging"
	"github.com/windowsadmins/devbootstrap/pkg/manifest"
	"github.com/windowsadmins/devbootstrap/pkg/msys"
	"github.com/windowsadmins/devbootstrap/pkg/pacman"
	"github.com/windowsadmins/devbootstrap/pkg/python"
	"github.com/windowsadmins/devbootstrap/pkg/sysinfo"
	"github.com/windowsadmins/devbootstrap/pkg/version"
)

// Environment file keys, in the order the stages write them.
const (
	keyRoot       = "MINGW_ROOT"
	keyPkgConfig  = "PKG_CONFIG_PATH"
	keyTypelib    = "GI_TYPELIB_PATH"
	keyLibrary    = "LD_LIBRARY_PATH"
	keyPythonPath = "PYTHONPATH"
)

var logger *logging.Logger

// enableANSIConsole enables ANSI colors in the console.
func enableANSIConsole() {
	for _, stream := range []*os.File{os.Stdout, os.Stderr} {
		handle := windows.Handle(stream.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(handle, &mode); err == nil {
			mode |= windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
			_ = windows.SetConsoleMode(handle, mode)
		}
	}
}

func main() {
	enableANSIConsole()
	patchWindowsArgs()

	// Define command-line flags.
	showConfig := pflag.Bool("show-config", false, "Display the current configuration and exit.")
	checkOnly := pflag.Bool("check-only", false, "Resolve and report, but don't write or install anything.")
	envFilePath := pflag.String("envfile", "", "Override the environment file path.")
	versionFlag := pflag.Bool("version", false, "Print the version and exit.")

	var verbosity int
	pflag.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (e.g. -v, -vv)")
	pflag.Usage = usage
	pflag.Parse()

	if *versionFlag {
		version.Print()
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *checkOnly {
		cfg.CheckOnly = true
	}
	if *envFilePath != "" {
		cfg.EnvFilePath = *envFilePath
	}
	if verbosity > 0 {
		cfg.Verbose = true
		if verbosity >= 2 {
			cfg.Debug = true
		}
	}

	// Initialize logging.
	logger = logging.New(verbosity > 0)
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	if err := logging.Init(cfg.StateDir, level); err != nil {
		logger.Fatal("Error initializing logger: %v", err)
	}
	defer logging.CloseLogger()

	// Show configuration if requested.
	if *showConfig {
		if cfgYaml, err := yaml.Marshal(cfg); err == nil {
			logger.Printf("Current configuration:\n%s", string(cfgYaml))
		}
		os.Exit(0)
	}

	// Determine which stages to run from the positional selector.
	runSystem, runPython := true, true
	switch stage := pflag.Arg(0); stage {
	case "":
	case "system":
		runPython = false
	case "python":
		runSystem = false
	default:
		logger.Error("Unknown stage: %s", stage)
		usage()
		os.Exit(1)
	}

	// Handle system signals for graceful shutdown.
	ctx := context.Background()
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		logger.Warning("Signal received, exiting: %s", sig.String())
		logging.CloseLogger()
		os.Exit(1)
	}()

	// Log host facts and refuse unsupported hosts before touching anything.
	facts := sysinfo.Gather()
	logging.Info("Host", "facts", facts.String())
	if err := sysinfo.CheckSupported(facts); err != nil {
		logger.Fatal("Unsupported host: %v", err)
	}

	// Check administrative privileges. Automated contexts (CI) run without
	// an interactive elevation prompt and skip the pre-check.
	automated := os.Getenv(cfg.AutomatedEnvVar) != ""
	if !automated {
		admin, adminErr := adminCheck()
		if adminErr != nil || !admin {
			logger.Fatal("Administrative access required. Error: %v, Admin: %v", adminErr, admin)
		}
	} else {
		logging.Debug("Automated context detected, skipping elevation pre-check",
			"env_var", cfg.AutomatedEnvVar)
	}

	// Package lists: embedded defaults with configuration overrides.
	defaults, err := manifest.Default()
	if err != nil {
		logger.Fatal("Failed to load package manifest: %v", err)
	}
	packages := defaults.Merge(cfg.PacmanPackages, cfg.PipPackages)

	if runSystem {
		if err := runSystemStage(ctx, cfg, packages); err != nil {
			logger.Fatal("System stage failed: %v", err)
		}
		logger.Success("System stage completed.")
	}

	if runPython {
		if err := runPythonStage(ctx, cfg, packages); err != nil {
			logger.Fatal("Python stage failed: %v", err)
		}
		logger.Success("Python stage completed.")
	}

	os.Exit(0)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: devbootstrap [flags] [system|python]\n\n")
	fmt.Fprintf(os.Stderr, "Stages:\n")
	fmt.Fprintf(os.Stderr, "  system   Resolve the MSYS2 root, write the environment file, install pacman packages.\n")
	fmt.Fprintf(os.Stderr, "  python   Verify the MINGW64 Python, extend the environment file, install pip packages.\n")
	fmt.Fprintf(os.Stderr, "  (omitted) Run both stages in order.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	pflag.PrintDefaults()
}

// runSystemStage resolves the installation root, persists the derived
// environment and installs the system package set.
func runSystemStage(ctx context.Context, cfg *config.Configuration, packages manifest.PackageSet) error {
	candidate := os.Getenv(cfg.RootEnvVar)
	if candidate != "" {
		logging.Debug("Pre-set root candidate", "env_var", cfg.RootEnvVar, "candidate", candidate)
	}

	root, err := msys.Resolve(candidate, msys.NewSystemDetector())
	if err != nil {
		switch {
		case errors.Is(err, msys.ErrNotFound):
			return fmt.Errorf("no MSYS2 installation could be found; install MSYS2 or set %s: %w",
				cfg.RootEnvVar, err)
		case errors.Is(err, msys.ErrInvalidRoot):
			return fmt.Errorf("the detected MSYS2 installation is unusable: %w", err)
		default:
			return err
		}
	}

	if cfg.CheckOnly {
		logging.Info("Check-only: would write environment file", "path", cfg.EnvFilePath)
		logging.Info("Check-only: would install pacman packages", "count", len(packages.Pacman))
		return nil
	}

	if blocking.InstallationBusy(root) {
		return fmt.Errorf("MSYS2 installation at %s is in use; close MSYS2 shells and retry", root.Path)
	}

	// The environment file reflects this run only: stale keys from earlier
	// runs (including PYTHONPATH) are dropped and rewritten.
	store := envfile.New(cfg.EnvFilePath)
	store.Set(keyRoot, root.Path)
	store.Set(keyPkgConfig, root.PkgConfigPath())
	store.Set(keyTypelib, root.TypelibPath())
	store.Set(keyLibrary, root.LibraryPath())
	if err := store.Save(); err != nil {
		return err
	}
	logging.Info("Wrote environment file", "path", cfg.EnvFilePath, "keys", store.Len())

	return pacman.NewManager(root).Install(ctx, packages.Pacman)
}

// runPythonStage re-loads the persisted environment, verifies the MINGW64
// interpreter, derives the module search path and installs the pip set.
func runPythonStage(ctx context.Context, cfg *config.Configuration, packages manifest.PackageSet) error {
	store, err := envfile.Load(cfg.EnvFilePath)
	if err != nil {
		// A check-only run of the system stage writes nothing, so a missing
		// file is expected during a combined dry run.
		if cfg.CheckOnly {
			logging.Info("Check-only: environment file not present yet; the python stage runs after the system stage",
				"path", cfg.EnvFilePath)
			return nil
		}
		return fmt.Errorf("run the system stage first: %w", err)
	}

	rootPath, ok := store.Get(keyRoot)
	if !ok {
		return fmt.Errorf("environment file %s has no %s entry; run the system stage first",
			cfg.EnvFilePath, keyRoot)
	}

	root := msys.NewRoot(rootPath)
	if !root.Validate() {
		return fmt.Errorf("recorded MSYS2 root %s is no longer valid", root.Path)
	}

	interp := python.NewInterpreter(root)
	if !interp.Exists() {
		return fmt.Errorf("MINGW64 Python not found at %s; did the system stage install it?",
			root.PythonExe())
	}

	ver, err := interp.Version(ctx)
	if err != nil {
		return err
	}
	if err := python.CheckMinimum(ver, cfg.MinimumPython); err != nil {
		return err
	}
	logging.Info("MINGW64 Python verified", "version", ver)

	if cfg.CheckOnly {
		logging.Info("Check-only: would set PYTHONPATH", "path", root.SitePackagesPath(ver))
		logging.Info("Check-only: would install pip packages", "count", len(packages.Pip))
		return nil
	}

	store.Set(keyPythonPath, root.SitePackagesPath(ver))
	if err := store.Save(); err != nil {
		return err
	}
	logging.Info("Updated environment file", "path", cfg.EnvFilePath, "key", keyPythonPath)

	return interp.PipInstall(ctx, packages.Pip)
}

// adminCheck verifies whether the current process has administrative privileges.
func adminCheck() (bool, error) {
	var adminSid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&adminSid)
	if err != nil {
		return false, err
	}
	defer windows.FreeSid(adminSid)
	token := windows.Token(0)
	isMember, err := token.IsMember(adminSid)
	return isMember, err
}
