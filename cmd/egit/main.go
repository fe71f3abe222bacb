package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/EdwardJoke/egit/internal/config"
	"github.com/EdwardJoke/egit/internal/download"
	"github.com/EdwardJoke/egit/internal/httpc"
	"github.com/EdwardJoke/egit/internal/registry"
)

// Exit codes
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitInvalidArgs   = 2
	ExitRegistryError = 3
	ExitDownloadError = 4
)

// app carries the configured clients shared by all subcommands.
type app struct {
	cfg      config.Config
	http     *httpc.Client
	registry *registry.Client
}

func main() {
	os.Exit(run())
}

func run() int {
	log.SetHandler(clihandler.New(os.Stderr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("interrupt received, shutting down")
		cancel()
	}()

	root := newRootCmd(&app{})
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(err.Error())
		return exitCode(err)
	}
	return ExitSuccess
}

func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		apiURL     string
		token      string
		outputDir  string
		verbose    bool
		noProgress bool
	)

	root := &cobra.Command{
		Use:           "egit",
		Short:         "Download packages from GitHub releases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}

			cfg := config.Default()

			path := configPath
			if path == "" {
				path = defaultConfigPath()
			}
			if path != "" {
				if _, err := os.Stat(path); err == nil {
					fileCfg, err := config.LoadFromFile(path)
					if err != nil {
						return err
					}
					cfg = fileCfg
				} else if configPath != "" {
					// An explicitly named config file must exist.
					return err
				}
			}

			if err := cfg.LoadFromEnv(); err != nil {
				return err
			}

			cfg = cfg.Merge(config.Config{
				APIURL:    apiURL,
				Token:     token,
				OutputDir: outputDir,
			})
			if noProgress {
				cfg.Progress = false
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.http = httpc.NewClient(httpc.Options{
				Timeout:   cfg.Timeout,
				UserAgent: cfg.UserAgent,
			})
			a.registry = registry.NewClient(a.http, registry.Options{
				BaseURL: cfg.APIURL,
				Token:   cfg.Token,
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "registry API endpoint")
	root.PersistentFlags().StringVar(&token, "token", "", "registry API token")
	root.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	root.AddCommand(
		newDownloadCmd(a),
		newReleasesCmd(a),
		newTagsCmd(a),
		newAssetsCmd(a),
	)

	return root
}

// defaultConfigPath returns the per-user config file path, or "" when the
// user config directory cannot be determined.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "egit", "config.yaml")
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	var chunkErr *download.ChunkError
	switch {
	case errors.Is(err, registry.ErrNoReleases),
		errors.Is(err, registry.ErrVersionNotFound),
		errors.Is(err, registry.ErrNoAssets),
		errors.Is(err, httpc.ErrNotFound):
		return ExitRegistryError
	case errors.As(err, &chunkErr),
		errors.Is(err, httpc.ErrRangeNotHonored),
		errors.Is(err, httpc.ErrRangeNotSupported),
		errors.Is(err, download.ErrInvalidPlan):
		return ExitDownloadError
	default:
		return ExitGeneralError
	}
}
