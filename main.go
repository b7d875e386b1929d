package main

import "github.com/thereayou/chatlite/cmd/server"

func main() {
	server.NewServer().Run()
}
