package main

import "juniorjoy/internal/app/server"

func main() {
	server.Run()
}
