package main

import (
	"fmt"
	"os"

	"github.com/danshapiro/kilroy/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("kilroy %s\n", version.Version)
		os.Exit(0)
	case "eventstream":
		eventstreamCmd(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  kilroy --version")
	fmt.Fprintln(os.Stderr, "  kilroy eventstream demo [--config <demo.yaml>] [--chunk-size <n>]")
}

func eventstreamCmd(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	switch args[0] {
	case "demo":
		eventstreamDemo(args[1:])
	default:
		usage()
		os.Exit(1)
	}
}
