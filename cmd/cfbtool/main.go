package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dargueta/cfb"
)

func main() {
	app := cli.App{
		Usage: "Inspect and build Compound File Binary containers",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a new, empty compound file",
				Action:    createFile,
				ArgsUsage: "OUTPUT_FILE",
			},
			{
				Name:      "ls",
				Usage:     "List the contents of a storage",
				Action:    listStorage,
				ArgsUsage: "IMAGE_FILE [PATH]",
			},
			{
				Name:      "cat",
				Usage:     "Print a stream's contents to stdout",
				Action:    catStream,
				ArgsUsage: "IMAGE_FILE PATH",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func createFile(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("expected exactly one argument: OUTPUT_FILE", 1)
	}
	store, err := os.Create(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := cfb.Create(store)
	if err != nil {
		return err
	}
	return f.Flush()
}

func listStorage(c *cli.Context) error {
	if c.Args().Len() < 1 || c.Args().Len() > 2 {
		return cli.Exit("expected IMAGE_FILE [PATH]", 1)
	}
	path := "/"
	if c.Args().Len() == 2 {
		path = c.Args().Get(1)
	}

	store, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := cfb.Open(store)
	if err != nil {
		return err
	}

	it, err := f.ReadStorage(path)
	if err != nil {
		return err
	}
	for {
		entry, ok := it.Next()
		if !ok {
			break
		}
		kind := "stream"
		if entry.IsStorage() {
			kind = "storage"
		}
		fmt.Printf("%-8s %10d  %s\n", kind, entry.Len(), entry.Path())
	}
	return nil
}

func catStream(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("expected IMAGE_FILE PATH", 1)
	}

	store, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := cfb.Open(store)
	if err != nil {
		return err
	}

	stream, err := f.OpenStream(c.Args().Get(1))
	if err != nil {
		return err
	}
	defer stream.Close()

	buf := make([]byte, 4096)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return nil
}
