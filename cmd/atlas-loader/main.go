package main

import (
	"fmt"
	"io"
	"os"
	"ticketpro/src/models"

	"ariga.io/atlas-provider-gorm/gormschema"
)

// Prints the DDL for the ticket schema. Used as the "src" of the atlas env.
func main() {
	stmts, err := gormschema.New("sqlite").Load(&models.Ticket{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
