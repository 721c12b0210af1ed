package main

import (
	"log"

	"orrery-sim/internal/dashboard"
)

func main() {
	if err := dashboard.Render("build"); err != nil {
		log.Fatal(err)
	}
}
