package main

import "github.com/frahmantamala/access-console/cmd"

func main() {
	cmd.Execute()
}
