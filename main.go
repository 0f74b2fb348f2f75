package main

import "github.com/ValentinKolb/keyspace/cmd"

func main() {
	cmd.Execute()
}
