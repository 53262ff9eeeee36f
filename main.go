package main

import (
	"log"

	"github.com/Rakhulsr/go-ecommerce-cart/app/cmd"
)

func main() {
	if err := cmd.RunCli(); err != nil {
		log.Fatal(err)
	}
}
