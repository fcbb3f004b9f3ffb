package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var tables = []string{"players", "adventurer_parties", "monster_types", "game_constants"}

func main() {
	var driver, dsn, out string
	flag.StringVar(&driver, "driver", envOr("DUNGEON_DATABASE_DRIVER", "postgres"), "postgres or mysql")
	flag.StringVar(&dsn, "dsn", os.Getenv("DUNGEON_DATABASE_DSN"), "database dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or DUNGEON_DATABASE_DSN")
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		log.Fatalf("unsupported driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("open %s: %v", driver, err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           out,
		ModelPkgPath:      "model",
		Mode:              gen.WithoutContext,
		FieldNullable:     true,
		FieldWithTypeTag:  false,
		FieldWithIndexTag: false,
	})
	g.UseDB(db)
	for _, table := range tables {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated gorm models for %d tables at %s\n", len(tables), out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
