// Command seed loads the question catalog from an xlsx workbook, or exports
// the current catalog back to one. The web process never writes questions;
// this tool is the supported way to provision them.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"quizapi/internal/app"
	"quizapi/internal/catalog"
	"quizapi/internal/db"
)

func main() {
	importPath := flag.String("file", "", "xlsx file with questions to import")
	exportPath := flag.String("export", "", "write the current question catalog to this xlsx file")
	flag.Parse()

	if *importPath == "" && *exportPath == "" {
		log.Printf("usage: seed -file questions.xlsx | seed -export backup.xlsx")
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Printf("configuration error: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.OpenPostgres(ctx, cfg.DSN())
	if err != nil {
		log.Printf("database error: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := catalog.NewService(pool)

	if *importPath != "" {
		f, err := os.Open(*importPath)
		if err != nil {
			log.Printf("open %s: %v", *importPath, err)
			os.Exit(1)
		}
		defer f.Close()

		report, err := svc.ImportQuestionsExcel(ctx, f)
		if err != nil {
			log.Printf("import failed: %v", err)
			os.Exit(1)
		}
		for _, rowErr := range report.Errors {
			log.Printf("row %d: %s", rowErr.Row, rowErr.Error)
		}
		log.Printf("imported %d/%d questions (%d failed)", report.SuccessRows, report.TotalRows, report.FailedRows)
	}

	if *exportPath != "" {
		data, err := svc.ExportQuestionsExcel(ctx)
		if err != nil {
			log.Printf("export failed: %v", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*exportPath, data, 0o644); err != nil {
			log.Printf("write %s: %v", *exportPath, err)
			os.Exit(1)
		}
		log.Printf("exported question catalog to %s", *exportPath)
	}
}
