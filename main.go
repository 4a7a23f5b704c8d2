package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/pdf-expenses/cmd/batch"
	"fjacquet/pdf-expenses/cmd/categorize"
	"fjacquet/pdf-expenses/cmd/extract"
	"fjacquet/pdf-expenses/cmd/root"
	"fjacquet/pdf-expenses/cmd/validate"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
