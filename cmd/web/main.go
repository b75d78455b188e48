package main

import "jobscape_backend/internal/app"

func main() {
	app.Run()
}
