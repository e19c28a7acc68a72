package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/client"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/session"
	"github.com/spf13/cobra"
)

type cli struct {
	apiURL      string
	sessionPath string
	timeout     time.Duration

	sess *session.Session
	api  *client.Client
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "shop-cli", "session.json")
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "shop-cli",
		Short:         "Command-line storefront for the shop API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open()
		},
	}

	apiDefault := os.Getenv("SHOPCLI_API")
	if apiDefault == "" {
		apiDefault = "http://localhost:5000"
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api", apiDefault, "shop API base URL")
	root.PersistentFlags().StringVar(&c.sessionPath, "session", defaultSessionPath(), "session file")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "per-command timeout")

	root.AddCommand(
		c.registerCmd(), c.loginCmd(), c.logoutCmd(), c.meCmd(),
		c.productsCmd(), c.categoriesCmd(),
		c.addCmd(), c.cartCmd(), c.removeCmd(), c.qtyCmd(),
		c.checkoutCmd(), c.ordersCmd(),
	)
	return root
}

func (c *cli) open() error {
	sess, err := session.Load(c.sessionPath)
	if err != nil {
		// start over with an empty session rather than refusing to run
		logging.New("shop-cli").Warn("session reset", "path", c.sessionPath, "err", err)
	}
	c.sess = sess
	c.api = client.New(c.apiURL, client.WithToken(sess.Token))
	return nil
}

func (c *cli) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *cli) requireLogin() error {
	if !c.sess.SignedIn() {
		return fmt.Errorf("not signed in, run: shop-cli login")
	}
	return nil
}
