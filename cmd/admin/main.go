package main

import (
	"context"
	"os"

	"github.com/example/shopadmin/pkg/console"
)

func main() {
	if err := console.Execute(context.Background(), os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
