package main

import (
	"context"

	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/tools/extract/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
