package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/arslanca/portfolio-web/cmd"
)

func main() {
	cmd.Execute()
}
