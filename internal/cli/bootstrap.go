// Package cli provides the plenario commands.
package cli

import (
	gocontext "context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/config"
	"github.com/example/plenario/internal/ctxutil"
	"github.com/example/plenario/internal/wire"
)

// ActorEnv names the operator recorded in the audit trail when --actor is not given.
const ActorEnv = "PLENARIO_ACTOR"

// globalActorID stores the operator for the current CLI invocation.
// Set once at startup by Bootstrap.
var globalActorID string

// Bootstrap loads the configuration and resolves the operator. It runs as the
// root command's PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	wire.Configure(cfg)

	actor, _ := cmd.Flags().GetString("actor")
	globalActorID = resolveActor(actor)
	return nil
}

func resolveActor(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(ActorEnv); v != "" {
		return v
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// GetActorID returns the stored actor ID from CLI startup.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}

// parseWhen accepts RFC3339 or a local "YYYY-MM-DD HH:MM" and returns RFC3339.
func parseWhen(s string) (string, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(time.RFC3339), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid time %q (use RFC3339 or \"YYYY-MM-DD HH:MM\")", s)
	}
	return t.Format(time.RFC3339), nil
}
