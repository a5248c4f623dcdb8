package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) > 3 {
		os.Exit(2) // want "direct call to os.Exit in main function of main package"
	}

	defer func() {
		os.Exit(1) // want "direct call to os.Exit in main function of main package"
	}()

	fmt.Println("receiver")
}

func fail() {
	os.Exit(1)
}
