package main

import (
	"avaspec-data-service/internal/app"
)

func main() {
	app.Run()
}
