package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adoptme/service-adoption/pkg/client"
	"github.com/adoptme/service-adoption/pkg/session"
)

// app carries the flags and the lazily opened client and session.
type app struct {
	apiURL    string
	statePath string
	verbose   bool

	logger  *zap.Logger
	api     *client.Client
	session *session.Session
	closeFn func() error
}

// run executes the command line in args and always releases the session
// store, including when the command fails.
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "adoptctl",
		Short:         "Browse pets, report missing pets and contact shelters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", envOr("ADOPTCTL_API_URL", client.DefaultBaseURL), "API base URL")
	root.PersistentFlags().StringVar(&a.statePath, "state", envOr("ADOPTCTL_STATE", defaultStatePath()), "Session database path (\":memory:\" keeps nothing)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newHealthCmd(a),
		newPetsCmd(a),
		newMissingCmd(a),
		newContactCmd(a),
		newSheltersCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newWishlistCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	a.logger = zap.NewNop()
	if a.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = log
	}

	a.api = client.New(a.apiURL, client.WithLogger(a.logger))

	var store session.Store
	if a.statePath == ":memory:" {
		store = session.NewMemoryStore()
		a.closeFn = func() error { return nil }
	} else {
		sqlite, err := session.OpenSQLiteStore(a.statePath)
		if err != nil {
			return err
		}
		store = sqlite
		a.closeFn = sqlite.Close
	}

	sess, err := session.New(cmd.Context(), store, a.api, a.logger)
	if err != nil {
		_ = a.closeFn()
		return err
	}
	a.session = sess
	a.api.SetToken(sess.Token())
	return nil
}

// authorized runs call with the session's access token set on the client,
// refreshing the token once if the server rejects it.
func (a *app) authorized(ctx context.Context, call func() error) error {
	return a.session.WithAuth(ctx, func(token string) error {
		a.api.SetToken(token)
		return call()
	})
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.closeFn == nil {
		return nil
	}
	closeFn := a.closeFn
	a.closeFn = nil
	return closeFn()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "adoptctl.db"
	}
	return filepath.Join(dir, "adoptctl", "session.db")
}
