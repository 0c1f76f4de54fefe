// Command gunzip decompresses a gzip file to a file or to stdout.
//
// Usage: gunzip IN [OUT]
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/JoshVarga/gunzip"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gunzip: ")
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: gunzip IN [OUT]")
	}
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	out := os.Stdout
	if len(args) == 2 {
		out, err = os.Create(args[1])
		if err != nil {
			return err
		}
		defer out.Close()
	}

	zr, err := gunzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()

	if _, err := io.Copy(out, zr); err != nil {
		return err
	}
	return nil
}
