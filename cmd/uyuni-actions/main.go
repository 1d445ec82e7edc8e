package main

import "uyuni-actions/internal/cli"

func main() {
	cli.Execute()
}
