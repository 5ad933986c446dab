package main

import (
	"context"
	"log"

	"github.com/nsqlite/nsqlite-mcp/internal/mcpconsole"
)

func main() {
	if err := mcpconsole.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
