package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/dalemusser/agenda/internal/app/legacyimport"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func runImport(ctx context.Context, args []string, logger *zap.Logger) error {
	fs := flag.NewFlagSet("import-firestore", flag.ExitOnError)
	var db dbFlags
	fs.StringVar(&db.uri, "mongo-uri", envOr("AGENDA_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	fs.StringVar(&db.database, "mongo-database", envOr("AGENDA_MONGO_DATABASE", "agenda"), "MongoDB database name")
	project := fs.String("project", envOr("AGENDA_FIREBASE_PROJECT_ID", ""), "Firebase project id")
	creds := fs.String("credentials", envOr("AGENDA_FIREBASE_CREDENTIALS_FILE", ""), "service account JSON (blank uses Application Default Credentials)")
	dryRun := fs.Bool("dry-run", false, "read and map documents without writing")
	yes := fs.Bool("y", false, "do not ask for confirmation")
	_ = fs.Parse(args)

	if *project == "" {
		if err := huh.NewInput().
			Title("Projeto Firebase").
			Description("ID do projeto que contém as coleções antigas").
			Value(project).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("informe o ID do projeto")
				}
				return nil
			}).
			Run(); err != nil {
			return errAborted
		}
	}

	if !*yes {
		confirm := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Importar %s para %s?", *project, db.database)).
				Description("Registros já importados serão atualizados; nada é apagado.").
				Affirmative("Importar").
				Negative("Cancelar").
				Value(&confirm),
		)).Run()
		if err != nil || !confirm {
			return errAborted
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	src, err := legacyimport.NewFirestoreSource(ctx, *project, *creds)
	if err != nil {
		return err
	}
	defer src.Close()

	deps, err := db.connect(ctx, logger)
	if err != nil {
		return err
	}
	defer deps.MongoClient.Disconnect(context.Background())

	im := &legacyimport.Importer{DB: deps.MongoDatabase, Source: src, Log: logger, DryRun: *dryRun}
	rep, err := im.Run(ctx)
	if err != nil {
		return err
	}
	printReport(rep, *dryRun)
	return nil
}

func printReport(rep legacyimport.Report, dryRun bool) {
	if dryRun {
		fmt.Println("Simulação: nenhum dado foi gravado.")
	}
	rows := []struct {
		name string
		c    legacyimport.Counts
	}{
		{"Congregações", rep.Congregations},
		{"Usuários", rep.Users},
		{"Ministérios", rep.Ministries},
		{"Eventos", rep.Events},
		{"Coletas", rep.Collections},
	}
	fmt.Printf("%-14s %6s %6s %10s %8s\n", "", "lidos", "novos", "atualizados", "ignorados")
	for _, r := range rows {
		fmt.Printf("%-14s %6d %6d %10d %8d\n", r.name, r.c.Read, r.c.Inserted, r.c.Updated, r.c.Skipped)
	}
	if rep.Unresolved > 0 {
		fmt.Printf("\nReferências não encontradas: %d\n", rep.Unresolved)
	}
	for _, w := range rep.Warnings {
		fmt.Fprintln(os.Stderr, "aviso:", w)
	}
}
