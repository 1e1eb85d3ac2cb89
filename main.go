package main

import "github.com/scanlens/scanlens/cmd/scanlens"

func main() { scanlens.Execute() }
