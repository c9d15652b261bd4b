// Command agendactl runs maintenance tasks against the agenda database:
// importing the Firestore-era data set and bootstrapping an administrator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/dalemusser/agenda/internal/app/bootstrap"
	"go.uber.org/zap"
)

const usage = `uso: agendactl <comando> [opções]

comandos:
  import-firestore   importa congregações, usuários, ministérios, eventos e coletas do Firestore
  bootstrap-admin    cria ou promove um administrador

Opções comuns (também lidas de AGENDA_MONGO_URI e AGENDA_MONGO_DATABASE):
  -mongo-uri, -mongo-database
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "import-firestore":
		err = runImport(ctx, os.Args[2:], logger)
	case "bootstrap-admin":
		err = runBootstrapAdmin(ctx, os.Args[2:], logger)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "comando desconhecido %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if errors.Is(err, errAborted) {
		fmt.Fprintln(os.Stderr, "cancelado.")
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}
}

var errAborted = errors.New("aborted by user")

// dbFlags are shared by every subcommand.
type dbFlags struct {
	uri      string
	database string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// connect opens the database the same way the server does, including the
// index reconciliation.
func (f dbFlags) connect(ctx context.Context, logger *zap.Logger) (bootstrap.DBDeps, error) {
	appCfg := bootstrap.AppConfig{
		MongoURI:         f.uri,
		MongoDatabase:    f.database,
		MongoMaxPoolSize: 10,
	}
	deps, err := bootstrap.ConnectDB(ctx, nil, appCfg, logger)
	if err != nil {
		return deps, err
	}
	if err := bootstrap.EnsureSchema(ctx, nil, appCfg, deps, logger); err != nil {
		_ = deps.MongoClient.Disconnect(context.Background())
		return deps, err
	}
	return deps, nil
}
