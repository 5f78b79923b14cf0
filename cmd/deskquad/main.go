// Package main is the deskquad command line.
package main

// main is the entrypoint for the deskquad CLI.
func main() {
	Execute()
}
