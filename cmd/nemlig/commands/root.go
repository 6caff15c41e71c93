package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"nemlig-cli/lib/configutil"
	"nemlig-cli/lib/nemlig"
	"nemlig-cli/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	username string
	password string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "nemlig",
	Short:         "nemlig is a CLI for grocery shopping on nemlig.com.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "nemlig.com email/username")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "nemlig.com password")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login builds a client and runs the session handshake. Flags win over
// the optional nemlig.json5 credentials file.
func login(ctx context.Context) (*nemlig.Client, error) {
	user, pass := username, password
	if user == "" || pass == "" {
		cfg, err := configutil.ReadConfig[credentials]("nemlig.json5")
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if user == "" {
			user = cfg.Username
		}
		if pass == "" {
			pass = cfg.Password
		}
	}
	if user == "" || pass == "" {
		return nil, errors.New("credentials required: pass --username/--password or create nemlig.json5")
	}

	client, err := nemlig.NewClient(nemlig.ClientOptions{})
	if err != nil {
		return nil, err
	}

	slog.Info("logging in", "username", user)
	if err := client.Login(ctx, user, pass); err != nil {
		return nil, err
	}
	return client, nil
}
