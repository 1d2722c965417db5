// Command routegen writes route declarations for //route: directives.
//
// Typical use is a go:generate line in a package with directives:
//
//	//go:generate go run github.com/JaimeStill/autoroute/cmd/routegen
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/autoroute/internal/routegen"
)

func main() {
	var (
		dir    = flag.String("dir", ".", "Package directory to scan")
		output = flag.String("output", routegen.DefaultOutput, "Generated file name, relative to -dir")
		quiet  = flag.Bool("quiet", false, "Suppress the summary line")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("routegen: ")

	n, err := routegen.Run(*dir, *output)
	if err != nil {
		log.Fatal(err)
	}

	if !*quiet {
		fmt.Printf("routegen: %d route(s) written to %s\n", n, *output)
	}
}
