// Applies goose SQL migrations from the migrations directory.
package main

import (
	"database/sql"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/config"
)

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	db, err := sql.Open("pgx", dbCfg.ConnString())
	if err != nil {
		log.Fatal("opening db connection error: " + err.Error())
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		log.Fatal("setting goose dialect error: " + err.Error())
	}
	if err = goose.Up(db, "migrations"); err != nil {
		log.Fatal("applying migrations error: " + err.Error())
	}
	log.Println("migrations applied")
}
