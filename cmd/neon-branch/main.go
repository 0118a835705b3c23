package main

import "github.com/dhanushreddy291/neon-circle-ci-orb/internal/cli"

func main() {
	cli.Execute()
}
