package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/huh"
	userstore "github.com/dalemusser/agenda/internal/app/store/users"
	"github.com/dalemusser/agenda/internal/app/system/authutil"
	"github.com/dalemusser/agenda/internal/app/system/inputval"
	"github.com/dalemusser/agenda/internal/app/system/normalize"
	"github.com/dalemusser/agenda/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func runBootstrapAdmin(ctx context.Context, args []string, logger *zap.Logger) error {
	fs := flag.NewFlagSet("bootstrap-admin", flag.ExitOnError)
	var db dbFlags
	fs.StringVar(&db.uri, "mongo-uri", envOr("AGENDA_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	fs.StringVar(&db.database, "mongo-database", envOr("AGENDA_MONGO_DATABASE", "agenda"), "MongoDB database name")
	email := fs.String("email", "", "administrator e-mail")
	name := fs.String("name", "", "full name for a new account")
	setPassword := fs.Bool("password", false, "prompt for a password")
	_ = fs.Parse(args)

	var password, confirm string
	fields := []huh.Field{}
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("E-mail do administrador").
			Value(email).
			Validate(func(s string) error {
				if !inputval.IsValidEmail(normalize.Email(s)) {
					return fmt.Errorf("e-mail inválido")
				}
				return nil
			}))
	}
	if *name == "" {
		fields = append(fields, huh.NewInput().
			Title("Nome completo").
			Description("Usado apenas se a conta ainda não existir").
			Value(name))
	}
	if *setPassword {
		fields = append(fields,
			huh.NewInput().Title("Senha").EchoMode(huh.EchoModePassword).Value(&password),
			huh.NewInput().Title("Confirmação da senha").EchoMode(huh.EchoModePassword).Value(&confirm))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return errAborted
		}
	}

	addr := normalize.Email(*email)
	if !inputval.IsValidEmail(addr) {
		return fmt.Errorf("invalid e-mail %q", *email)
	}
	var hash string
	if *setPassword {
		if err := authutil.ValidateNewPassword(password, confirm); err != nil {
			return fmt.Errorf("%s", authutil.Message(err))
		}
		h, err := authutil.HashPassword(password)
		if err != nil {
			return err
		}
		hash = h
	}

	deps, err := db.connect(ctx, logger)
	if err != nil {
		return err
	}
	defer deps.MongoClient.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	users := userstore.New(deps.MongoDatabase)
	created, err := users.EnsureAdmin(ctx, addr, normalize.Name(*name))
	if err != nil {
		return err
	}
	if hash != "" {
		u, err := users.GetByEmail(ctx, addr)
		if err != nil {
			return err
		}
		if err := users.SetPassword(ctx, u.ID, hash); err != nil {
			return err
		}
	}

	switch {
	case created && hash == "":
		fmt.Printf("Administrador %s criado. Defina a senha em \"Esqueci minha senha\".\n", addr)
	case created:
		fmt.Printf("Administrador %s criado.\n", addr)
	default:
		fmt.Printf("%s agora é administrador.\n", addr)
	}
	return nil
}
