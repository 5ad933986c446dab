package main

import (
	"context"
	"log"

	"github.com/nsqlite/nsqlite-mcp/internal/mcpserver"
)

func main() {
	if err := mcpserver.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
