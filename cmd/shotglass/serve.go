package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/auth"
	"github.com/xy-planning-network/shotglass/http/route"
	"github.com/xy-planning-network/shotglass/http/router"
	"github.com/xy-planning-network/shotglass/ranger"
)

// defaultStatic are the files served when no --static flag is given.
var defaultStatic = []string{"*.css", "*.html", "*.js", "*.json"}

type serveConfig struct {
	authPassword string
	authUser     string
	debug        bool
	dir          string
	failFast     bool
	index        bool
	static       []string
}

func serveCmd() *cobra.Command {
	var cfg serveConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve files from disk",
		Long: `Serve the files matching each --static pattern at their relative paths.

An index.html is also served at /.
With --index, / instead lists every HTML page being served.

Examples:
  shotglass serve --debug
  shotglass serve --dir ./site --static '*.html' --static 'img/*.png'
  shotglass serve --index --auth-user me --auth-password secret`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := newRanger(cfg)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().BoolVar(&cfg.debug, "debug", false, "Listen on :8080 and log verbosely")
	cmd.Flags().BoolVar(&cfg.failFast, "fail-fast", false, "Shut down whenever a request fails")
	cmd.Flags().BoolVar(&cfg.index, "index", false, "Serve a generated index of HTML pages at /")
	cmd.Flags().StringVar(&cfg.dir, "dir", "", "Directory to serve from (default current directory)")
	cmd.Flags().StringVar(&cfg.authUser, "auth-user", "", "Require basic authentication as this user")
	cmd.Flags().StringVar(&cfg.authPassword, "auth-password", "", "Require basic authentication with this password")
	cmd.Flags().StringArrayVar(&cfg.static, "static", defaultStatic, "Glob of files to serve; repeatable")

	return cmd
}

// newRanger constructs a *ranger.Ranger serving what cfg describes.
func newRanger(cfg serveConfig) (*ranger.Ranger, error) {
	if cfg.dir != "" {
		if err := os.Chdir(cfg.dir); err != nil {
			return nil, fmt.Errorf("%w: %s", shotglass.ErrNotExist, err)
		}
	}

	opts := []ranger.RangerOption{ranger.WithDebug(cfg.debug)}
	if cfg.failFast {
		opts = append(opts, ranger.WithFailFast(true))
	}

	if cfg.authUser != "" || cfg.authPassword != "" {
		opts = append(opts, ranger.WithAuth(auth.Config{
			Enabled:  true,
			Username: cfg.authUser,
			Password: cfg.authPassword,
		}))
	}

	rng, err := ranger.New(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.index {
		r := route.Route{Path: "/", Handler: router.IndexHandler("*.html")}
		if err := rng.Handle(http.MethodGet, r); err != nil {
			return nil, err
		}
	}

	for _, pattern := range cfg.static {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: static pattern %q: %s", shotglass.ErrNotValid, pattern, err)
		}

		if err := rng.AddStaticPaths(paths...); err != nil {
			return nil, err
		}
	}

	return rng, nil
}
