// Command totem is the client for the Dois Tempos Café ordering
// system: login/logout, account management, CRUD over the backend's
// resources, and a local front server that serves the page routes.
package main

import "github.com/doistemposcafe/totem/cmd/totem/cmd"

func main() {
	cmd.Execute()
}
