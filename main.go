package main

import "github.com/drift-labs/sdkdoc/cmd"

func main() {
	cmd.Execute()
}
