package main

import "github.com/arjunakankipati/racing-stat-service-go/cmd"

func main() {
	cmd.Execute()
}
