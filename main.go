package main

import "github.com/Mahsabeigi33/AdminKingsCare/cmd"

func main() {
	cmd.Execute()
}
